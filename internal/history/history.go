// Package history implements the linear undo/redo engine for structural
// element edits. Only element insert and delete are journaled; move, resize
// and property edits are not, and page-level structural operations (add,
// remove, reorder page) are likewise outside undo coverage. That limitation
// is deliberate and matches the editing model this engine was built for: a
// command whose page has since been deleted is silently skipped.
package history

import (
	"github.com/yamaryu999/pdf-editor/internal/document"
)

// Action identifies what a recorded command did to the document.
type Action int

const (
	// Insert records that an element was added to a page.
	Insert Action = iota
	// Delete records that an element was removed from a page.
	Delete
)

// Command is one journaled edit. Element is a deep clone taken at record
// time; the stacks never share mutable state with the live document.
type Command struct {
	Action  Action
	PageUID string
	Element document.Element
}

// Engine holds the undo and redo stacks for one document session.
type Engine struct {
	undo []Command
	redo []Command
}

// NewEngine creates an engine with empty stacks.
func NewEngine() *Engine {
	return &Engine{}
}

// Record journals an insert or delete of el on the given page. The element
// is cloned as it exists right now, and the redo stack is cleared: after a
// new edit there is nothing to redo.
func (e *Engine) Record(action Action, pageUID string, el document.Element) {
	e.undo = append(e.undo, Command{
		Action:  action,
		PageUID: pageUID,
		Element: document.CloneElement(el),
	})
	e.redo = nil
}

// CanUndo reports whether an undo step is available.
func (e *Engine) CanUndo() bool { return len(e.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (e *Engine) CanRedo() bool { return len(e.redo) > 0 }

// Undo pops the newest command and applies its inverse to doc, then moves
// the command to the redo stack. It returns the command that was applied,
// if any.
func (e *Engine) Undo(doc *document.Document) (Command, bool) {
	if len(e.undo) == 0 {
		return Command{}, false
	}
	cmd := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.apply(doc, cmd, true)
	e.redo = append(e.redo, cmd)
	return cmd, true
}

// Redo pops the newest undone command and re-applies it forward, then moves
// it back to the undo stack. It returns the command that was applied, if
// any.
func (e *Engine) Redo(doc *document.Document) (Command, bool) {
	if len(e.redo) == 0 {
		return Command{}, false
	}
	cmd := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.apply(doc, cmd, false)
	e.undo = append(e.undo, cmd)
	return cmd, true
}

// Reset drops both stacks, for when a new document replaces the session.
func (e *Engine) Reset() {
	e.undo = nil
	e.redo = nil
}

// apply performs cmd against doc, inverted or forward. A missing page is a
// silent no-op: page deletion is not journaled, so the command set cannot
// represent its restoration.
func (e *Engine) apply(doc *document.Document, cmd Command, invert bool) {
	page := doc.FindPage(cmd.PageUID)
	if page == nil {
		return
	}

	action := cmd.Action
	if invert {
		if action == Insert {
			action = Delete
		} else {
			action = Insert
		}
	}

	id := cmd.Element.Base().ID
	switch action {
	case Insert:
		if page.FindElement(id) == nil {
			// Always a fresh clone, so repeated cycles cannot
			// corrupt the stored snapshot.
			page.AddElement(document.CloneElement(cmd.Element))
		}
	case Delete:
		page.RemoveElement(id)
	}
}
