package booking

import "strconv"

const seatsPerRow = 6

// SeatForIndex maps a booking sequence index to a seat label: six seats per
// row, columns A-F, rows counted from 1. Index 0 is "1A", index 6 is "2A".
// The caller must pass the flight's booked-seat count as observed inside the
// booking transaction, which keeps the sequence dense and collision-free.
// Cabin layout and class zoning are deliberately ignored.
func SeatForIndex(index int) string {
	row := index/seatsPerRow + 1
	col := byte('A' + index%seatsPerRow)
	return strconv.Itoa(row) + string(col)
}
