package formulas

import (
	"strconv"
	"strings"
)

// IsRange reports whether addr spans more than one cell.
func IsRange(addr string) bool {
	return strings.Contains(addr, ":")
}

func splitSheet(addr string) (string, string) {
	if i := strings.LastIndex(addr, "!"); i >= 0 {
		return strings.Trim(addr[:i], "'"), addr[i+1:]
	}
	return "", addr
}

// SplitRange splits an optionally sheet-qualified range into its sheet and
// its two corner addresses.
func SplitRange(addr string) (string, string, string, error) {
	sheet, rng := splitSheet(strings.ReplaceAll(addr, "$", ""))
	parts := strings.Split(rng, ":")
	if len(parts) != 2 {
		return "", "", "", parseErrorf("invalid range: %s", addr)
	}
	return sheet, parts[0], parts[1], nil
}

// SplitAddress splits an optionally sheet-qualified cell address into sheet,
// column name and row number.
func SplitAddress(addr string) (string, string, int, error) {
	sheet, cell := splitSheet(strings.ReplaceAll(addr, "$", ""))
	colName := strings.TrimRight(cell, "0123456789")
	row, err := strconv.Atoi(cell[len(colName):])
	if err != nil {
		return "", "", 0, parseErrorf("invalid cell address: %s", addr)
	}
	return sheet, colName, row, nil
}

// ResolveRange enumerates the cell addresses a reference spans, row-major,
// keeping the sheet qualifier if the reference has one.
func ResolveRange(addr string) ([]string, error) {
	addr = strings.ReplaceAll(addr, "$", "")
	if !IsRange(addr) {
		return []string{addr}, nil
	}
	sheet, start, end, err := SplitRange(addr)
	if err != nil {
		return nil, err
	}
	_, startCol, startRow, err := SplitAddress(start)
	if err != nil {
		return nil, err
	}
	_, endCol, endRow, err := SplitAddress(end)
	if err != nil {
		return nil, err
	}
	c1, c2 := columnIndex(startCol), columnIndex(endCol)
	if c1 > c2 || startRow > endRow {
		return nil, parseErrorf("invalid range: %s", addr)
	}
	prefix := ""
	if sheet != "" {
		prefix = sheet + "!"
	}
	cells := make([]string, 0, (endRow-startRow+1)*(c2-c1+1))
	for row := startRow; row <= endRow; row++ {
		for col := c1; col <= c2; col++ {
			cells = append(cells, prefix+columnName(col)+strconv.Itoa(row))
		}
	}
	return cells, nil
}

// Cells enumerates the addresses this reference spans.
func (n *RangeNode) Cells() ([]string, error) {
	return ResolveRange(n.Value())
}

func columnIndex(name string) int {
	index := 0
	for _, r := range strings.ToUpper(name) {
		index = index*26 + int(r-'A') + 1
	}
	return index
}

func columnName(index int) string {
	name := ""
	for index > 0 {
		index--
		name = string(rune('A'+index%26)) + name
		index /= 26
	}
	return name
}
