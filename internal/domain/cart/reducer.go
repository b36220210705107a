// internal/domain/cart/reducer.go
package cart

// reduce applies one command to a state and returns the next state.
// It never mutates its input; line slices are copied before changes.
// Subtotal and item count are always recomputed from the full line
// list so they can never drift from the lines themselves.
func reduce(s State, cmd Command) State {
	switch c := cmd.(type) {
	case AddItem:
		quantity := c.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		lineID := LineID(c.Item.ID, c.Size)
		unitPrice := c.Item.UnitPrice(c.Size)

		lines := copyLines(s.Lines)
		merged := false
		for i := range lines {
			if lines[i].ID == lineID {
				lines[i].Quantity += quantity
				lines[i].TotalPrice = lines[i].UnitPrice * int64(lines[i].Quantity)
				merged = true
				break
			}
		}
		if !merged {
			lines = append(lines, Line{
				ID:         lineID,
				Item:       c.Item,
				Size:       c.Size,
				Quantity:   quantity,
				UnitPrice:  unitPrice,
				TotalPrice: unitPrice * int64(quantity),
			})
		}
		return recalc(s, lines)

	case RemoveItem:
		lines := make([]Line, 0, len(s.Lines))
		for _, line := range s.Lines {
			if line.ID != c.LineID {
				lines = append(lines, line)
			}
		}
		return recalc(s, lines)

	case UpdateQuantity:
		if c.Quantity <= 0 {
			return reduce(s, RemoveItem{LineID: c.LineID})
		}
		lines := copyLines(s.Lines)
		for i := range lines {
			if lines[i].ID == c.LineID {
				lines[i].Quantity = c.Quantity
				lines[i].TotalPrice = lines[i].UnitPrice * int64(c.Quantity)
				break
			}
		}
		return recalc(s, lines)

	case SetOrderDay:
		s.OrderDay = c.Day
		return s

	case Clear:
		next := EmptyState()
		next.Loading = s.Loading
		return next

	case replaceState:
		return c.state
	}

	return s
}

// recalc rebuilds the derived totals from the line list
func recalc(s State, lines []Line) State {
	s.Lines = lines
	s.Subtotal = 0
	s.ItemCount = 0
	for _, line := range lines {
		s.Subtotal += line.TotalPrice
		s.ItemCount += line.Quantity
	}
	return s
}

func copyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
