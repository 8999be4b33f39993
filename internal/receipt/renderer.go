package receipt

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"salepoint/internal/cart"
	"salepoint/internal/pricing"
)

// Document is everything the rendered receipt shows: the confirmed lines and
// totals, snapshotted before the cart was cleared.
type Document struct {
	Number    string
	OrderID   int64
	IssuedAt  time.Time
	Lines     []cart.Line
	Breakdown pricing.Breakdown
}

const (
	canvasWidth = 360
	lineHeight  = 16
	marginX     = 16
	marginY     = 24
)

// Renderer rasterizes a Document into a PNG artifact the operator can
// download or share. Rendering is read-only with respect to order state and
// best-effort: a failure here never reverses a finished checkout.
type Renderer struct {
	title  string
	footer string
}

func NewRenderer(title, footer string) *Renderer {
	if title == "" {
		title = "RETAIL RECEIPT"
	}
	if footer == "" {
		footer = "Thank you, see you again!"
	}
	return &Renderer{title: title, footer: footer}
}

// Render draws the receipt and encodes it as PNG.
func (r *Renderer) Render(doc Document) ([]byte, error) {
	// title + number/order/date rows + separator, per line two rows,
	// separator + up to four total rows, separator + footer.
	rows := 5 + len(doc.Lines)*2 + 6 + 2
	height := marginY*2 + rows*lineHeight

	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}

	y := marginY

	center := func(s string) {
		w := d.MeasureString(s).Ceil()
		d.Dot = fixed.P((canvasWidth-w)/2, y)
		d.DrawString(s)
		y += lineHeight
	}
	left := func(s string) {
		d.Dot = fixed.P(marginX, y)
		d.DrawString(s)
		y += lineHeight
	}
	split := func(l, rgt string) {
		d.Dot = fixed.P(marginX, y)
		d.DrawString(l)
		w := d.MeasureString(rgt).Ceil()
		d.Dot = fixed.P(canvasWidth-marginX-w, y)
		d.DrawString(rgt)
		y += lineHeight
	}
	rule := func() {
		left("----------------------------------------")
	}

	center(r.title)
	center("Receipt " + doc.Number)
	if doc.OrderID > 0 {
		center(fmt.Sprintf("Order #%d", doc.OrderID))
	} else {
		y += lineHeight
	}
	center(doc.IssuedAt.Format("Mon, 02 Jan 2006 15:04"))
	rule()

	for _, ln := range doc.Lines {
		left(ln.Name)
		split(
			fmt.Sprintf("  %d %s x %s", ln.Quantity, ln.Unit, formatAmount(ln.UnitPrice)),
			formatAmount(ln.Amount()),
		)
	}

	rule()
	split("Subtotal", formatAmount(doc.Breakdown.Subtotal))
	split("VAT", formatAmount(doc.Breakdown.VAT))
	if doc.Breakdown.Surtax > 0 {
		split("Surtax", formatAmount(doc.Breakdown.Surtax))
	}
	split("TOTAL", formatAmount(doc.Breakdown.Total))
	rule()

	y += lineHeight
	center(r.footer)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode receipt image: %w", err)
	}
	return buf.Bytes(), nil
}

// formatAmount groups a minor-unit amount by thousands: 450000 -> "450.000".
func formatAmount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
