package models

const (
	DefaultTipIcon     = "✨"
	DefaultTipCategory = "Wellness"
)

// TipPalette is the ordered set of card colours. Tips are coloured by their
// position in a batch, so batches longer than the palette wrap around.
var TipPalette = []string{
	"bg-gradient-to-br from-purple-400 to-purple-600",
	"bg-gradient-to-br from-blue-400 to-blue-600",
	"bg-gradient-to-br from-green-400 to-green-600",
	"bg-gradient-to-br from-orange-400 to-orange-600",
	"bg-gradient-to-br from-pink-400 to-pink-600",
	"bg-gradient-to-br from-teal-400 to-teal-600",
	"bg-gradient-to-br from-cyan-400 to-cyan-600",
	"bg-gradient-to-br from-indigo-400 to-indigo-600",
}

// PaletteColor returns the palette entry for the tip at 0-based position i.
func PaletteColor(i int) string {
	n := len(TipPalette)
	return TipPalette[((i%n)+n)%n]
}

type Tip struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Short    string `json:"short"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

// TipDetail is the expanded guidance for one tip. Explanation is nil when
// the generator did not supply one.
type TipDetail struct {
	Title       string   `json:"title"`
	Explanation *string  `json:"explanation"`
	Steps       []string `json:"steps"`
	Benefits    []string `json:"benefits"`
}
