package hero

import (
	"strconv"
	"time"
)

const (
	spreadX       = 700.0
	spreadY       = 1200.0
	spreadRotate  = 90.0
	minScale      = 0.7
	scaleRange    = 1.5
	rowSeedStep   = 1000
	letterStagger = 40 * time.Millisecond
)

// Letter is the scattered starting pose of one title character.
type Letter struct {
	Char     string        `json:"char"`
	Row      int           `json:"row"`
	Index    int           `json:"index"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Rotation float64       `json:"rotation"`
	Scale    float64       `json:"scale"`
	Delay    time.Duration `json:"delay"`
}

// Key identifies the letter within the title.
func (l Letter) Key() string {
	return strconv.Itoa(l.Row) + "-" + strconv.Itoa(l.Index+1)
}

// Scatter computes the starting pose of every character of the two title
// lines. Each letter gets its own generator seeded with
// seed + index + 1000*row, where index counts letters across both lines.
func Scatter(seed uint32, line1, line2 string) [][]Letter {
	rows := [][]rune{[]rune(line1), []rune(line2)}
	out := make([][]Letter, len(rows))

	index := 0
	for row, chars := range rows {
		out[row] = make([]Letter, 0, len(chars))
		for _, ch := range chars {
			rng := NewMulberry32(seed + uint32(index) + uint32(row*rowSeedStep))
			letter := Letter{
				Char:  string(ch),
				Row:   row,
				Index: index,
			}
			letter.X = (rng.Float64() - 0.5) * spreadX
			letter.Y = (rng.Float64() - 0.5) * spreadY
			letter.Rotation = (rng.Float64() - 0.5) * spreadRotate
			letter.Scale = minScale + rng.Float64()*scaleRange
			letter.Delay = time.Duration(index) * letterStagger
			out[row] = append(out[row], letter)
			index++
		}
	}
	return out
}
