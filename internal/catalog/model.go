package catalog

// Product is an immutable snapshot from one catalog query. UnitPrice is in
// minor currency units. StockQuantity goes stale once inventory moves
// server-side; display may trust the snapshot, checkout must re-validate.
type Product struct {
	ID            int64
	Name          string
	Unit          string
	UnitPrice     int64
	StockQuantity int
}
