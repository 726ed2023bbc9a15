package models

// ForecastResponse is the decoded payload of the provider's forecast endpoint.
// List is nil when the payload carries no "list" field at all.
type ForecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List *[]ForecastEntry `json:"list"`

	// Raw holds the undecoded body for diagnostics
	Raw []byte `json:"-"`
}

// ForecastEntry is a single 3-hour forecast point. Fields are pointers so a
// missing key can be told apart from a zero value.
type ForecastEntry struct {
	Dt    int64         `json:"dt"`
	DtTxt *string       `json:"dt_txt"`
	Main  *ForecastMain `json:"main"`
}

// ForecastMain carries the measured values of a forecast point
type ForecastMain struct {
	Temp     *float64 `json:"temp"`     // in Kelvin
	Humidity *float64 `json:"humidity"` // percentage
}

// Table is a forecast flattened into parallel columns
type Table struct {
	Dates        []string
	Temperatures []float64 // in Celsius
	Humidity     []int     // percentage
}

// Len returns the number of rows, or -1 if the columns disagree
func (t *Table) Len() int {
	n := len(t.Dates)
	if len(t.Temperatures) != n || len(t.Humidity) != n {
		return -1
	}
	return n
}

// Append adds one row to the table
func (t *Table) Append(date string, temperature float64, humidity int) {
	t.Dates = append(t.Dates, date)
	t.Temperatures = append(t.Temperatures, temperature)
	t.Humidity = append(t.Humidity, humidity)
}
