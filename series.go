package sensordash

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type SeriesName string

const (
	VolumeDispensed    SeriesName = "volume_dispensed"
	VolumeSetpoint     SeriesName = "volume_setpoint"
	TemperatureSensor1 SeriesName = "temperature_sensor_1"
	TemperatureSensor2 SeriesName = "temperature_sensor_2"
	TemperatureSensor3 SeriesName = "temperature_sensor_3"
	CO2                SeriesName = "co2"
	O2                 SeriesName = "o2"
	Humidity           SeriesName = "humidity"
)

// Distribution describes the normal distribution a random series is drawn
// from.
type Distribution struct {
	Series SeriesName
	Mean   float64
	StdDev float64
}

// The random sensor series, in generation order. The setpoint is not listed
// here since it is constant.
var DefaultDistributions = []Distribution{
	{Series: VolumeDispensed, Mean: 5, StdDev: 1},
	{Series: TemperatureSensor1, Mean: 25, StdDev: 2},
	{Series: TemperatureSensor2, Mean: 26, StdDev: 2},
	{Series: TemperatureSensor3, Mean: 24, StdDev: 2},
	{Series: CO2, Mean: 400, StdDev: 50},
	{Series: O2, Mean: 21, StdDev: 1},
	{Series: Humidity, Mean: 50, StdDev: 10},
}

// Dataset is the immutable bundle of the time axis and every signal series.
// It is built once by Generate and shared by every request afterwards.
//
// Nothing hands out the backing arrays: the accessors return copies, so any
// number of goroutines can read a Dataset without locking.
type Dataset struct {
	time   []float64
	series map[SeriesName][]float64
	names  []SeriesName
}

// NewDataset assembles a dataset from already generated values. Every series
// must have the same length as the time axis.
func NewDataset(time []float64, series map[SeriesName][]float64, order []SeriesName) (*Dataset, error) {
	if len(order) != len(series) {
		return nil, fmt.Errorf("%w: %d series but %d names in order", ErrInvalidDataset, len(series), len(order))
	}

	ds := &Dataset{
		time:   slices.Clone(time),
		series: make(map[SeriesName][]float64, len(series)),
		names:  slices.Clone(order),
	}

	for _, name := range order {
		values, ok := series[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q listed in order but missing", ErrInvalidDataset, name)
		}

		if len(values) != len(time) {
			return nil, fmt.Errorf("%w: %q has %d points, time axis has %d", ErrInvalidDataset, name, len(values), len(time))
		}

		ds.series[name] = slices.Clone(values)
	}

	return ds, nil
}

// Time returns a copy of the time axis.
func (d *Dataset) Time() []float64 {
	return slices.Clone(d.time)
}

// Series returns a copy of the named series.
func (d *Dataset) Series(name SeriesName) ([]float64, bool) {
	values, ok := d.series[name]
	if !ok {
		return nil, false
	}

	return slices.Clone(values), true
}

// Names lists the series in generation order.
func (d *Dataset) Names() []SeriesName {
	return slices.Clone(d.names)
}

func (d *Dataset) Len() int {
	return len(d.time)
}
