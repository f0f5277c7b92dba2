// Package units converts recipe measurements between US customary and
// metric systems.
//
// The engine is a set of pure functions over fixed lookup tables: there is
// no state, no I/O, and conversions in both directions may run concurrently
// without coordination. Metric-bound results pass through "smart rounding",
// which snaps raw conversions to culturally idiomatic quantities (1 cup
// becomes 250 ml, not 236.588 ml) when the snap stays within tolerance.
package units

// Category classifies a conversion by measurement family.
type Category string

const (
	Volume Category = "volume"
	Weight Category = "weight"
	Length Category = "length"
)

// Conversion is one directed unit conversion: multiply by Factor to get the
// quantity in Unit.
type Conversion struct {
	Unit     string   `json:"unit"`
	Factor   float64  `json:"factor"`
	Category Category `json:"category"`
}

// usToMetric maps lowercased US unit names to their metric conversion.
var usToMetric = map[string]Conversion{
	// Volume
	"cup":          {Unit: "ml", Factor: 236.588, Category: Volume},
	"cups":         {Unit: "ml", Factor: 236.588, Category: Volume},
	"tbsp":         {Unit: "ml", Factor: 14.787, Category: Volume},
	"tablespoon":   {Unit: "ml", Factor: 14.787, Category: Volume},
	"tablespoons":  {Unit: "ml", Factor: 14.787, Category: Volume},
	"tsp":          {Unit: "ml", Factor: 4.929, Category: Volume},
	"teaspoon":     {Unit: "ml", Factor: 4.929, Category: Volume},
	"teaspoons":    {Unit: "ml", Factor: 4.929, Category: Volume},
	"fl oz":        {Unit: "ml", Factor: 29.574, Category: Volume},
	"fluid ounce":  {Unit: "ml", Factor: 29.574, Category: Volume},
	"fluid ounces": {Unit: "ml", Factor: 29.574, Category: Volume},
	"quart":        {Unit: "L", Factor: 0.946, Category: Volume},
	"quarts":       {Unit: "L", Factor: 0.946, Category: Volume},
	"gallon":       {Unit: "L", Factor: 3.785, Category: Volume},
	"gallons":      {Unit: "L", Factor: 3.785, Category: Volume},
	"pint":         {Unit: "ml", Factor: 473.176, Category: Volume},
	"pints":        {Unit: "ml", Factor: 473.176, Category: Volume},

	// Weight
	"oz":     {Unit: "g", Factor: 28.3495, Category: Weight},
	"ounce":  {Unit: "g", Factor: 28.3495, Category: Weight},
	"ounces": {Unit: "g", Factor: 28.3495, Category: Weight},
	"lb":     {Unit: "g", Factor: 453.592, Category: Weight},
	"lbs":    {Unit: "g", Factor: 453.592, Category: Weight},
	"pound":  {Unit: "g", Factor: 453.592, Category: Weight},
	"pounds": {Unit: "g", Factor: 453.592, Category: Weight},

	// Length
	"inch":   {Unit: "cm", Factor: 2.54, Category: Length},
	"inches": {Unit: "cm", Factor: 2.54, Category: Length},
	"in":     {Unit: "cm", Factor: 2.54, Category: Length},
}

// metricToUS maps lowercased metric unit names to their US conversion. The
// factors are independent approximations, not reciprocals of the forward
// table.
var metricToUS = map[string]Conversion{
	// Volume
	"ml": {Unit: "tsp", Factor: 0.203, Category: Volume},
	"l":  {Unit: "quart", Factor: 1.057, Category: Volume},

	// Weight
	"g":  {Unit: "oz", Factor: 0.0353, Category: Weight},
	"kg": {Unit: "lb", Factor: 2.205, Category: Weight},

	// Length
	"cm": {Unit: "inch", Factor: 0.394, Category: Length},
}

// metricRoundValues holds the curated "nice number" thresholds per metric
// unit used by smart rounding.
var metricRoundValues = map[string][]float64{
	"ml": {5, 10, 15, 25, 50, 75, 100, 125, 150, 175, 200, 250, 300, 350, 400, 450, 500, 750, 1000},
	"g":  {5, 10, 15, 25, 50, 75, 100, 125, 150, 175, 200, 225, 250, 300, 350, 400, 450, 500, 750, 1000},
	"L":  {0.25, 0.5, 0.75, 1, 1.5, 2, 2.5, 3, 4, 5},
	"cm": {1, 2, 2.5, 3, 4, 5, 6, 7, 8, 9, 10, 12, 15, 20, 25, 30},
}

// displayFractions maps fractional remainders to their display form for US
// volume units. This is the superset table, including eighths and both
// roundings of the lossy thirds.
var displayFractions = []struct {
	value float64
	text  string
}{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{0.33, "1/3"},
	{0.34, "1/3"},
	{0.375, "3/8"},
	{0.5, "1/2"},
	{0.625, "5/8"},
	{0.66, "2/3"},
	{0.67, "2/3"},
	{0.75, "3/4"},
	{0.875, "7/8"},
}

// usVolumeUnits is the closed set of units eligible for fraction display.
var usVolumeUnits = map[string]bool{
	"cup":        true,
	"cups":       true,
	"tbsp":       true,
	"tablespoon": true,
	"tsp":        true,
	"teaspoon":   true,
}

// Data is a serializable snapshot of all conversion tables and rounding
// thresholds for consumption by a presentation layer.
type Data struct {
	USToMetric  map[string]Conversion `json:"us_to_metric"`
	MetricToUS  map[string]Conversion `json:"metric_to_us"`
	RoundValues map[string][]float64  `json:"round_values"`
}

// ConversionData returns a copy of the conversion tables. Callers may
// mutate the result freely; the engine's own tables are never touched.
func ConversionData() Data {
	d := Data{
		USToMetric:  make(map[string]Conversion, len(usToMetric)),
		MetricToUS:  make(map[string]Conversion, len(metricToUS)),
		RoundValues: make(map[string][]float64, len(metricRoundValues)),
	}
	for k, v := range usToMetric {
		d.USToMetric[k] = v
	}
	for k, v := range metricToUS {
		d.MetricToUS[k] = v
	}
	for k, v := range metricRoundValues {
		d.RoundValues[k] = append([]float64(nil), v...)
	}
	return d
}
