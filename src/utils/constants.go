package utils

const ShortDashDateLayout = "2006-01-02"
const FileStampDateLayout = "20060102"

// Sentiment labels attached to analyzed articles and portfolio aggregates.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
	SentimentMixed   = "mixed"
)

// Impact levels attached to analyzed articles.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// Quote and article provenance. Fallback marks locally generated placeholder
// data substituted when a provider call fails or is rate-limited.
const (
	SourceProvider = "provider"
	SourceFallback = "fallback"
)

// ChartColors is the palette used for workbook charts, cycled by index.
var ChartColors = []string{
	"#80b3ff", // Light Blue
	"#a3d977", // Light Green
	"#ffa366", // Light Orange
	"#ff8080", // Light Red
	"#c285ff", // Light Purple
	"#80e6d4", // Light Teal
	"#e680ff", // Light Magenta
	"#b3a3ff", // Light Slate Blue
}

// GetChartColor returns a palette color, wrapping around when the index
// exceeds the palette size.
func GetChartColor(index int) string {
	return ChartColors[index%len(ChartColors)]
}
