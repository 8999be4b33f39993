package cart

// Line is one product inside an uncommitted cart. UnitPrice is captured when
// the line is first added, so a catalog price change never retroactively
// alters an in-progress cart. Stock is the last-known available inventory and
// bounds every quantity mutation.
type Line struct {
	ProductID int64
	Name      string
	Unit      string
	UnitPrice int64
	Quantity  int
	Stock     int
}

// Amount is the line total in minor units.
func (l Line) Amount() int64 {
	return l.UnitPrice * int64(l.Quantity)
}
