package loot

// drawChildren paints the active children through c, back to front in the
// given order, and returns the list with removed children dropped. The
// drop happens after the traversal and keeps the relative order of the
// survivors, so paint order is unaffected.
func drawChildren(c Canvas, children []Visual, reverse bool) []Visual {
	removed := false
	n := len(children)
	for i := 0; i < n; i++ {
		child := children[i]
		if reverse {
			child = children[n-1-i]
		}
		switch child.Base().State {
		case StateRemoved:
			removed = true
		case StateHidden:
		default:
			child.Draw(c)
		}
	}
	if removed {
		children = compactRemoved(children)
	}
	return children
}

// compactRemoved filters out children pending removal in place and clears
// the vacated tail so dropped elements can be collected.
func compactRemoved(children []Visual) []Visual {
	kept := children[:0]
	for _, child := range children {
		if child.Base().State != StateRemoved {
			kept = append(kept, child)
		}
	}
	for i := len(kept); i < len(children); i++ {
		children[i] = nil
	}
	return kept
}

// objectAt returns the first hit-testable child containing (x, y), in
// forward order.
func objectAt(children []Visual, x, y int) Visual {
	for _, child := range children {
		if testable(child) && child.HitTest(x, y) {
			return child
		}
	}
	return nil
}

// --- Depth sort ---

// depthLessOrEqual orders spatial elements by descending Pos.Z. Using >= keeps
// equal depths in their original order.
func depthLessOrEqual(a, b Visual3D) bool {
	return a.Base3D().Pos.Z >= b.Base3D().Pos.Z
}

// depthSort sorts items in place using buf as scratch space and returns the
// (possibly grown) buffer for reuse. Bottom-up merge sort: stable, and free
// of allocations once the buffer reaches its high-water mark.
func depthSort(items, buf []Visual3D) []Visual3D {
	n := len(items)
	if n <= 1 {
		return buf
	}
	if cap(buf) < n {
		buf = make([]Visual3D, n)
	}
	buf = buf[:n]

	a := items
	b := buf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := lo + width
			if mid > n {
				mid = n
			}
			hi := lo + 2*width
			if hi > n {
				hi = n
			}
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(items, buf)
	}
	clear(buf)
	return buf[:0]
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []Visual3D, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if depthLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
