package dashboard

import (
	"github.com/richxcame/trip-dashboard/pkg/models"
)

const (
	// FareDatasetLabel names the single fare series
	FareDatasetLabel = "Fare (INR)"
	// FareDatasetColor is the bar fill used by the dashboard front end
	FareDatasetColor = "#4ade80"
)

// Dataset is one bar series
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
}

// ChartData is the bar chart input for the visible page
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Project maps a page of trips to a fare bar series, one bar per trip
// labeled by its date. Fares are the values parsed at load time.
func Project(page []models.Trip) ChartData {
	labels := make([]string, len(page))
	fares := make([]float64, len(page))

	for i, t := range page {
		labels[i] = t.Date
		fares[i] = t.Fare.Value()
	}

	return ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           FareDatasetLabel,
			Data:            fares,
			BackgroundColor: FareDatasetColor,
		}},
	}
}
