package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// jsonFloat encodes NaN and the infinities as the strings "NaN", "+Inf" and
// "-Inf", which encoding/json rejects as numbers. Finite values stay numbers.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !(math.IsNaN(v) || math.IsInf(v, 0)) {
			return fmt.Errorf("stats: invalid number %q", s)
		}
		*f = jsonFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type intervalJSON struct {
	Lower jsonFloat `json:"lower"`
	Upper jsonFloat `json:"upper"`
}

func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{Lower: jsonFloat(i.Lower), Upper: jsonFloat(i.Upper)})
}

func (i *Interval) UnmarshalJSON(b []byte) error {
	var w intervalJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*i = Interval{Lower: float64(w.Lower), Upper: float64(w.Upper)}
	return nil
}

type summaryJSON struct {
	N             int       `json:"n"`
	Confidence    jsonFloat `json:"confidence"`
	Mean          jsonFloat `json:"mean"`
	Variance      jsonFloat `json:"variance"`
	StdDev        jsonFloat `json:"std_dev"`
	StdErr        jsonFloat `json:"std_err"`
	TScore        jsonFloat `json:"t_score"`
	MarginOfError jsonFloat `json:"margin_of_error"`
	Interval      Interval  `json:"confidence_interval"`
}

// MarshalJSON writes the summary with non-finite statistics as strings, so
// samples containing NaN or infinities still serialize.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryJSON{
		N:             s.N,
		Confidence:    jsonFloat(s.Confidence),
		Mean:          jsonFloat(s.Mean),
		Variance:      jsonFloat(s.Variance),
		StdDev:        jsonFloat(s.StdDev),
		StdErr:        jsonFloat(s.StdErr),
		TScore:        jsonFloat(s.TScore),
		MarginOfError: jsonFloat(s.MarginOfError),
		Interval:      s.Interval,
	})
}

func (s *Summary) UnmarshalJSON(b []byte) error {
	var w summaryJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*s = Summary{
		N:             w.N,
		Confidence:    float64(w.Confidence),
		Mean:          float64(w.Mean),
		Variance:      float64(w.Variance),
		StdDev:        float64(w.StdDev),
		StdErr:        float64(w.StdErr),
		TScore:        float64(w.TScore),
		MarginOfError: float64(w.MarginOfError),
		Interval:      w.Interval,
	}
	return nil
}
