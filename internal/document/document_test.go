package document

import "testing"

func newTestDoc(pageCount int) *Document {
	doc := New("/tmp/source.pdf")
	for i := 0; i < pageCount; i++ {
		doc.AppendPage(NewSourcePage(595, 842, 0, i))
	}
	return doc
}

func TestDocument_FindPage(t *testing.T) {
	doc := newTestDoc(3)

	for _, p := range doc.Pages {
		if got := doc.FindPage(p.UID); got != p {
			t.Errorf("FindPage(%s) returned wrong page", p.UID)
		}
	}
	if doc.FindPage("no-such-uid") != nil {
		t.Error("FindPage should return nil for unknown uid")
	}
}

func TestDocument_IdentityStableUnderStructuralEdits(t *testing.T) {
	doc := newTestDoc(4)
	uids := make([]string, 0, 4)
	for _, p := range doc.Pages {
		uids = append(uids, p.UID)
	}

	// Reorder, insert and delete; surviving uids must be unchanged and
	// only positions may move.
	doc.MovePage(uids[3], 0)
	doc.InsertPage(2, NewPage(400, 400))
	doc.RemovePage(uids[1])

	for i, uid := range uids {
		if i == 1 {
			if doc.FindPage(uid) != nil {
				t.Error("removed page still findable")
			}
			continue
		}
		if doc.FindPage(uid) == nil {
			t.Errorf("page %d lost its identity after structural edits", i)
		}
	}

	if doc.IndexOfPage(uids[3]) != 0 {
		t.Errorf("expected moved page at index 0, got %d", doc.IndexOfPage(uids[3]))
	}
	if doc.PageCount() != 4 {
		t.Errorf("expected 4 pages, got %d", doc.PageCount())
	}
}

func TestDocument_RemovePage_ReturnsRemovedValue(t *testing.T) {
	doc := newTestDoc(2)
	uid := doc.Pages[0].UID

	removed := doc.RemovePage(uid)
	if removed == nil || removed.UID != uid {
		t.Fatal("RemovePage should return the removed page")
	}
	if doc.RemovePage(uid) != nil {
		t.Error("removing an absent page should return nil, not error")
	}
}

func TestDocument_InsertPage_ClampsIndex(t *testing.T) {
	doc := newTestDoc(2)

	early := NewPage(100, 100)
	doc.InsertPage(-5, early)
	if doc.Pages[0] != early {
		t.Error("negative index should clamp to front")
	}

	late := NewPage(100, 100)
	doc.InsertPage(99, late)
	if doc.Pages[len(doc.Pages)-1] != late {
		t.Error("oversized index should clamp to back")
	}
}

func TestPage_ElementOperations(t *testing.T) {
	page := NewPage(595, 842)
	a := NewImageElement(0, 0, 10, 10, "", nil)
	b := NewTextElement(0, 0, 10, 10, "b")
	page.AddElement(a)
	page.AddElement(b)

	if page.FindElement(a.ID) != a {
		t.Error("FindElement miss for existing element")
	}
	if page.FindElement("ghost") != nil {
		t.Error("FindElement should return nil for unknown id")
	}

	removed := page.RemoveElement(a.ID)
	if removed == nil || removed.Base().ID != a.ID {
		t.Error("RemoveElement should return the removed element")
	}
	if len(page.Elements) != 1 || page.Elements[0].Base().ID != b.ID {
		t.Error("remaining z-order wrong after removal")
	}
	if page.RemoveElement(a.ID) != nil {
		t.Error("removing an absent element should return nil")
	}
}

func TestPage_InsertElement_ZOrder(t *testing.T) {
	page := NewPage(595, 842)
	bottom := NewTextElement(0, 0, 10, 10, "bottom")
	top := NewTextElement(0, 0, 10, 10, "top")
	middle := NewTextElement(0, 0, 10, 10, "middle")

	page.AddElement(bottom)
	page.AddElement(top)
	page.InsertElement(1, middle)

	want := []string{bottom.ID, middle.ID, top.ID}
	for i, el := range page.Elements {
		if el.Base().ID != want[i] {
			t.Errorf("z-order position %d: got %s, want %s", i, el.Base().ID, want[i])
		}
	}
}

func TestNewSourcePage_CapturesProvenance(t *testing.T) {
	p := NewSourcePage(612, 792, 90, 7)

	if p.SourceIndex == nil || *p.SourceIndex != 7 {
		t.Error("source index not captured")
	}
	if p.Rotation != 90 {
		t.Errorf("expected rotation 90, got %d", p.Rotation)
	}

	blank := NewPage(612, 792)
	if blank.SourceIndex != nil {
		t.Error("blank pages must have no source index")
	}
}
