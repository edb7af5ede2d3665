package heap

// RowID is the stable location of a row inside a table's page store:
// Page: page logic ID
// Slot: slot index inside the page
type RowID struct {
	Page uint32
	Slot uint16
}
