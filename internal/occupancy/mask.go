// Package occupancy строит битовую маску занятых клеток вокруг актора.
//
// Окрестность - прямоугольник 9x7 с актором в центре. Бит i соответствует
// смещению (dx, dy), где i = (dy+HalfHeight)*Width + (dx+HalfWidth).
// Бит 63 не используется.
package occupancy

import (
	"fmt"
	"math/bits"
	"strings"

	"advanced-melee/internal/domain"
)

const (
	Width      = 9
	Height     = 7
	HalfWidth  = Width / 2
	HalfHeight = Height / 2
	Cells      = Width * Height

	centerBit = HalfHeight*Width + HalfWidth
)

// Символы ASCII-сетки
const (
	CellClear    = '#' // клетка должна быть свободна
	CellAny      = '.' // не важно
	CellActor    = '@' // клетка актора
	cellOccupied = 'X' // для вывода занятых клеток
)

// Mask - набор клеток окрестности
type Mask uint64

// WorldQuery - источник знаний о препятствиях
type WorldQuery interface {
	IsOccupied(p domain.Position) bool
}

// Bit возвращает номер бита для смещения или false, если смещение вне окрестности
func Bit(dx, dy int) (int, bool) {
	if dx < -HalfWidth || dx > HalfWidth || dy < -HalfHeight || dy > HalfHeight {
		return 0, false
	}
	return (dy+HalfHeight)*Width + (dx + HalfWidth), true
}

// Offset - обратное к Bit
func Offset(bit int) (dx, dy int) {
	return bit%Width - HalfWidth, bit/Width - HalfHeight
}

// Build опрашивает мир по каждой клетке окрестности ровно один раз.
// Возвращает маску и число занятых клеток. Клетка самого актора не учитывается.
func Build(q WorldQuery, origin domain.Position) (Mask, int) {
	var m Mask
	count := 0
	for i := 0; i < Cells; i++ {
		if i == centerBit {
			continue
		}
		dx, dy := Offset(i)
		if q.IsOccupied(origin.Shift(dx, dy)) {
			m |= 1 << uint(i)
			count++
		}
	}
	return m, count
}

// Has - занята ли клетка со смещением (dx, dy)
func (m Mask) Has(dx, dy int) bool {
	bit, ok := Bit(dx, dy)
	return ok && m&(1<<uint(bit)) != 0
}

// With возвращает маску с добавленной клеткой
func (m Mask) With(dx, dy int) Mask {
	bit, ok := Bit(dx, dy)
	if !ok {
		return m
	}
	return m | 1<<uint(bit)
}

// Overlaps - пересекаются ли две маски
func (m Mask) Overlaps(other Mask) bool {
	return m&other != 0
}

// Count - число отмеченных клеток
func (m Mask) Count() int {
	return bits.OnesCount64(uint64(m))
}

// Flip отражает маску по горизонтали (dx -> -dx).
// Так получается требование к месту для зеркальной анимации.
func Flip(m Mask) Mask {
	var out Mask
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		bit := bits.TrailingZeros64(rest)
		if bit >= Cells {
			continue
		}
		dx, dy := Offset(bit)
		out = out.With(-dx, dy)
	}
	return out
}

// ParseGrid читает рисунок 9x7: '#' - должно быть свободно, '.' - не важно,
// '@' - клетка актора (только в центре).
func ParseGrid(rows []string) (Mask, error) {
	if len(rows) != Height {
		return 0, fmt.Errorf("clearance grid must have %d rows, got %d", Height, len(rows))
	}

	var m Mask
	for y, row := range rows {
		cells := []rune(strings.TrimSpace(row))
		if len(cells) != Width {
			return 0, fmt.Errorf("clearance row %d must have %d cells, got %d", y, Width, len(cells))
		}
		for x, c := range cells {
			bit := y*Width + x
			switch c {
			case CellClear:
				if bit == centerBit {
					return 0, fmt.Errorf("clearance row %d: actor cell cannot be required clear", y)
				}
				m |= 1 << uint(bit)
			case CellAny:
			case CellActor:
				if bit != centerBit {
					return 0, fmt.Errorf("clearance row %d: actor marker must be in the center", y)
				}
			default:
				return 0, fmt.Errorf("clearance row %d: unexpected cell %q", y, c)
			}
		}
	}
	return m, nil
}

// Grid рисует маску в том же формате, что принимает ParseGrid.
// Занятые клетки (если маска - маска занятости) выводятся как '#'.
func (m Mask) Grid() []string {
	rows := make([]string, Height)
	var sb strings.Builder
	for y := 0; y < Height; y++ {
		sb.Reset()
		for x := 0; x < Width; x++ {
			bit := y*Width + x
			switch {
			case bit == centerBit:
				sb.WriteRune(CellActor)
			case m&(1<<uint(bit)) != 0:
				sb.WriteRune(CellClear)
			default:
				sb.WriteRune(CellAny)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// Conflicts рисует пересечение требования и занятости: 'X' - конфликтные клетки
func Conflicts(required, occupied Mask) string {
	grid := required.Grid()
	conflict := required & occupied
	for y := range grid {
		row := []rune(grid[y])
		for x := range row {
			if conflict&(1<<uint(y*Width+x)) != 0 {
				row[x] = cellOccupied
			}
		}
		grid[y] = string(row)
	}
	return strings.Join(grid, "\n")
}

func (m Mask) String() string {
	return fmt.Sprintf("%#016x", uint64(m))
}
