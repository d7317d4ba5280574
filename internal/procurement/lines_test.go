package procurement

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/barbox/barbox-admin/internal/resource"
)

func TestLineEditorRunningTotal(t *testing.T) {
	e := NewLineEditor()
	require.Equal(t, 1, e.Len())

	require.NoError(t, e.SetProduct(0, "P000001", resource.Number(10.50)))
	require.NoError(t, e.SetQuantity(0, 2))
	e.Add()
	require.NoError(t, e.SetProduct(1, "P000002", resource.Number(5)))

	require.Equal(t, "26.00", e.Total().StringFixed(2))

	require.NoError(t, e.SetPrice(1, 6))
	require.Equal(t, "27.00", e.Total().StringFixed(2))
}

func TestFractionalQuantityRoundsOnlyTheTotal(t *testing.T) {
	line := Line{ProductID: "P000003", Quantity: 2.5, Price: 1.005}
	require.Equal(t, "2.5125", LineTotal(line).String())

	e := NewLineEditor(line, Line{ProductID: "P000004", Quantity: 0.75, Price: 0.99})
	require.Equal(t, "3.26", e.Total().String())
}

func TestLineEditorKeepsOneRow(t *testing.T) {
	e := NewLineEditor(Line{ProductID: "P000001", Quantity: 1, Price: 3})
	require.NoError(t, e.Remove(0))
	require.Equal(t, 1, e.Len())
	require.ErrorIs(t, e.Remove(3), ErrLineIndex)
	require.ErrorIs(t, e.SetQuantity(-1, 1), ErrLineIndex)
}

func TestSetProductBlankKeepsPrice(t *testing.T) {
	e := NewLineEditor(Line{ProductID: "P000001", Quantity: 1, Price: 3})
	require.NoError(t, e.SetProduct(0, "  ", 99))
	lines := e.Lines()
	require.Equal(t, "", lines[0].ProductID)
	require.Equal(t, resource.Number(3), lines[0].Price)
}

func TestApplyDropsEmptyRowsOnNormalize(t *testing.T) {
	e := NewLineEditor(Line{ProductID: "P000001", Quantity: 2, Price: 4})
	e.Add()

	p := PurchaseSchema.Blank()
	e.Apply(&p)
	require.Len(t, p.Lines, 2)
	PurchaseSchema.Normalize(&p)
	require.Equal(t, []Line{{ProductID: "P000001", Quantity: 2, Price: 4}}, p.Lines)
	require.Equal(t, "8.00", LinesTotal(p.Lines).StringFixed(2))
}
