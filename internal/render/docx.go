package render

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// Brand palette (hex, no leading #).
const (
	colorTeal = "008080"
	colorNavy = "003366"
	colorRed  = "CC0000"
	colorGray = "808080"
)

// Font sizes in half-points, the unit go-docx expects.
const (
	sizeTitle    = "56" // 28pt
	sizeSubtitle = "32" // 16pt
	sizeSection  = "26" // 13pt
	sizeBody     = "20" // 10pt
	sizeFooter   = "16" // 8pt
)

// writeDocx styles the document model into a Word document on w.
func writeDocx(blocks []block, w io.Writer) error {
	doc := docx.New().WithDefaultTheme()

	for _, b := range blocks {
		switch b.kind {
		case blockTitle:
			p := doc.AddParagraph()
			p.AddText(b.text).Size(sizeTitle).Color(colorTeal).Bold()

		case blockSubtitle:
			p := doc.AddParagraph().Justification("center")
			p.AddText(b.text).Size(sizeSubtitle).Color(colorNavy).Bold()

		case blockMeta:
			p := doc.AddParagraph()
			p.AddText(b.label + ":  ").Size(sizeBody).Bold()
			p.AddText(b.text).Size(sizeBody)

		case blockSection:
			doc.AddParagraph() // spacer
			p := doc.AddParagraph()
			p.AddText(b.text).Size(sizeSection).Color(colorNavy).Bold()

		case blockWarning:
			p := doc.AddParagraph()
			p.AddText("• " + b.text).Size(sizeBody).Color(colorRed).Bold()

		case blockBullet:
			p := doc.AddParagraph()
			p.AddText("• " + b.text).Size(sizeBody)

		case blockStep:
			p := doc.AddParagraph()
			p.AddText(fmt.Sprintf("Step %d:  ", b.num)).Size(sizeBody).Color(colorNavy).Bold()
			p.AddText(b.text).Size(sizeBody)

		case blockFooter:
			doc.AddParagraph() // spacer
			p := doc.AddParagraph().Justification("center")
			p.AddText(b.text).Size(sizeFooter).Color(colorGray).Italic()
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
