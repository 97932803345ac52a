package sensordash

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

type GeneratorOptions struct {
	// Number of samples in the time axis and in every series.
	Points int

	// The time axis spans [Start, End] inclusive.
	Start float64
	End   float64

	// Seed for the random source. Zero seeds from the wall clock, so every
	// run produces different data.
	Seed uint64

	// Value of every point of the volume setpoint series.
	Setpoint float64

	Distributions []Distribution
}

func DefaultGeneratorOptions() GeneratorOptions {
	distributions := make([]Distribution, len(DefaultDistributions))
	copy(distributions, DefaultDistributions)

	return GeneratorOptions{
		Points:        100,
		Start:         0,
		End:           10,
		Seed:          0,
		Setpoint:      5.0,
		Distributions: distributions,
	}
}

func (o GeneratorOptions) Validate() error {
	if o.Points < 2 {
		return fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidGenerator, o.Points)
	}

	if !(o.End > o.Start) || math.IsInf(o.End-o.Start, 0) {
		return fmt.Errorf("%w: time range [%v, %v] is empty or unbounded", ErrInvalidGenerator, o.Start, o.End)
	}

	if math.IsNaN(o.Setpoint) || math.IsInf(o.Setpoint, 0) {
		return fmt.Errorf("%w: setpoint %v is not finite", ErrInvalidGenerator, o.Setpoint)
	}

	seen := map[SeriesName]bool{VolumeSetpoint: true}
	for _, d := range o.Distributions {
		if seen[d.Series] {
			return fmt.Errorf("%w: series %q defined twice", ErrInvalidGenerator, d.Series)
		}
		seen[d.Series] = true

		if math.IsNaN(d.Mean) || math.IsInf(d.Mean, 0) {
			return fmt.Errorf("%w: series %q has non-finite mean %v", ErrInvalidGenerator, d.Series, d.Mean)
		}

		if !(d.StdDev >= 0) || math.IsInf(d.StdDev, 0) {
			return fmt.Errorf("%w: series %q has invalid standard deviation %v", ErrInvalidGenerator, d.Series, d.StdDev)
		}
	}

	return nil
}

// Generate draws every series once and returns the resulting dataset. Each
// distribution gets its own independent draws from a single seeded source, in
// the order listed. The volume setpoint is constant and always comes last.
func Generate(options GeneratorOptions) (*Dataset, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	seed := options.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	logger := logrus.WithFields(logrus.Fields{
		"tag":    "Generator",
		"seed":   seed,
		"points": options.Points,
	})

	source := rand.New(rand.NewSource(seed))

	timeAxis := Linspace(options.Start, options.End, options.Points)

	series := make(map[SeriesName][]float64, len(options.Distributions)+1)
	order := make([]SeriesName, 0, len(options.Distributions)+1)

	for _, d := range options.Distributions {
		values := make([]float64, options.Points)
		for j := range values {
			values[j] = d.Mean + d.StdDev*source.NormFloat64()
		}

		series[d.Series] = values
		order = append(order, d.Series)

		logger.WithFields(logrus.Fields{
			"series":     d.Series,
			"mean":       d.Mean,
			"stddev":     d.StdDev,
			"sampleMean": Mean(values),
		}).Debug("generated series")
	}

	series[VolumeSetpoint] = Constant(options.Setpoint, options.Points)
	order = append(order, VolumeSetpoint)

	ds, err := NewDataset(timeAxis, series, order)
	if err != nil {
		return nil, err
	}

	logger.WithField("series", len(order)).Info("generated sample data")
	return ds, nil
}
