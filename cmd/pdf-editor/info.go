package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamaryu999/pdf-editor/internal/pdfio"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <pdf>",
	Short: "Show page count and page dimensions of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := pdfio.Inspect(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("File:      %s\n", info.Path)
		fmt.Printf("Size:      %d bytes\n", info.FileSize)
		fmt.Printf("Version:   %s\n", info.Version)
		fmt.Printf("Encrypted: %t\n", info.Encrypted)
		fmt.Printf("Pages:     %d\n", info.PageCount)
		for i, dim := range info.Pages {
			fmt.Printf("  page %d: %.1f x %.1f pt\n", i+1, dim.Width, dim.Height)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
