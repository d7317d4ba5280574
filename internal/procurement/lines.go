package procurement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/barbox/barbox-admin/internal/resource"
)

func blankLine() Line {
	return Line{Quantity: 1}
}

// LineEditor edits the product rows of a purchase draft. It always holds at
// least one row.
type LineEditor struct {
	lines []Line
}

// NewLineEditor starts from lines, or from one blank row.
func NewLineEditor(lines ...Line) *LineEditor {
	e := &LineEditor{lines: append([]Line(nil), lines...)}
	if len(e.lines) == 0 {
		e.lines = []Line{blankLine()}
	}
	return e
}

// Lines returns a copy of the rows.
func (e *LineEditor) Lines() []Line {
	return append([]Line(nil), e.lines...)
}

// Len reports the number of rows.
func (e *LineEditor) Len() int {
	return len(e.lines)
}

// Add appends a blank row.
func (e *LineEditor) Add() {
	e.lines = append(e.lines, blankLine())
}

// Remove deletes row i unless it is the last one left.
func (e *LineEditor) Remove(i int) error {
	if i < 0 || i >= len(e.lines) {
		return ErrLineIndex
	}
	if len(e.lines) == 1 {
		return nil
	}
	e.lines = append(e.lines[:i], e.lines[i+1:]...)
	return nil
}

// SetProduct selects the product of row i and preloads its purchase price.
func (e *LineEditor) SetProduct(i int, productID string, price resource.Number) error {
	if i < 0 || i >= len(e.lines) {
		return ErrLineIndex
	}
	e.lines[i].ProductID = strings.TrimSpace(productID)
	if e.lines[i].ProductID != "" {
		e.lines[i].Price = price
	}
	return nil
}

// SetQuantity sets the quantity of row i.
func (e *LineEditor) SetQuantity(i int, qty resource.Number) error {
	if i < 0 || i >= len(e.lines) {
		return ErrLineIndex
	}
	e.lines[i].Quantity = qty
	return nil
}

// SetPrice sets the unit price of row i.
func (e *LineEditor) SetPrice(i int, price resource.Number) error {
	if i < 0 || i >= len(e.lines) {
		return ErrLineIndex
	}
	e.lines[i].Price = price
	return nil
}

// Total is the running total of every row.
func (e *LineEditor) Total() decimal.Decimal {
	return LinesTotal(e.lines)
}

// Apply copies the rows into a purchase draft.
func (e *LineEditor) Apply(p *Purchase) {
	p.Lines = e.Lines()
}

// LineTotal is quantity times unit price.
func LineTotal(l Line) decimal.Decimal {
	return l.Quantity.Decimal().Mul(l.Price.Decimal())
}

// LinesTotal sums LineTotal over lines, rounded to cents.
func LinesTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total.Round(2)
}

// SubmittableLines drops rows without a product.
func SubmittableLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l.ProductID) != "" {
			out = append(out, l)
		}
	}
	return out
}
