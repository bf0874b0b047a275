package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/richxcame/trip-dashboard/internal/dashboard"
	"github.com/richxcame/trip-dashboard/internal/server"
	"github.com/richxcame/trip-dashboard/internal/tripsource"
	"github.com/richxcame/trip-dashboard/pkg/i18n"
	"github.com/richxcame/trip-dashboard/pkg/models"
	"github.com/richxcame/trip-dashboard/pkg/validation"
	"github.com/spf13/cobra"
)

// ErrLoadFailed is returned by show when the trip listing cannot be loaded
var ErrLoadFailed = errors.New(dashboard.FailureMessage)

type showOptions struct {
	vehicle string
	payment string
	rating  int
	search  string
	minFare float64
	maxFare float64
	page    int
	asJSON  bool
	lang    string
}

// sourceFactory is replaced in tests
var sourceFactory = func(root *rootOptions) tripsource.Source {
	return server.NewTripSource(root.cfg)
}

func newShowCommand(root *rootOptions) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Load trips once and print a filtered page with its fare series",
		Example: `  tripdash show --vehicle Sedan --payment UPI --rating 5 --search airport
  tripdash show --min-fare 100 --max-fare 500 --page 2 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.vehicle, "vehicle", "", "Vehicle type: Auto, Mini, Sedan or SUV")
	f.StringVar(&opts.payment, "payment", "", "Payment method: Cash, Card or UPI")
	f.IntVar(&opts.rating, "rating", 0, "Exact user rating 1-5 (0 = any)")
	f.StringVar(&opts.search, "search", "", "Case-insensitive pickup or dropoff substring")
	f.Float64Var(&opts.minFare, "min-fare", 0, "Lowest fare")
	f.Float64Var(&opts.maxFare, "max-fare", 0, "Highest fare (defaults to the fare ceiling)")
	f.IntVar(&opts.page, "page", 1, "Page to print")
	f.BoolVar(&opts.asJSON, "json", false, "Print the dashboard view as JSON")
	f.StringVar(&opts.lang, "lang", i18n.DefaultLang, "Label language: en or hi")
	return cmd
}

func runShow(cmd *cobra.Command, root *rootOptions, opts *showOptions) error {
	criteria := dashboard.Criteria{
		VehicleType:   models.VehicleType(opts.vehicle),
		PaymentMethod: models.PaymentMethod(opts.payment),
		Rating:        opts.rating,
		MinFare:       opts.minFare,
		Search:        opts.search,
	}
	if err := validation.ValidateStruct(criteria); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	controller := dashboard.NewController(sourceFactory(root),
		dashboard.WithPhaseInterval(root.cfg.Dashboard.PhaseInterval()))

	updates, unsubscribe := controller.Subscribe()
	defer unsubscribe()

	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for status := range updates {
			if !opts.asJSON {
				fmt.Fprintln(out, statusText(status, opts.lang))
			}
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	loadErr := controller.Load(ctx)
	<-printed

	if loadErr != nil {
		if opts.asJSON {
			_ = writeJSON(out, controller.View())
		}
		return fmt.Errorf("%w (%w)", ErrLoadFailed, loadErr)
	}

	criteria.MaxFare = controller.Ceiling()
	if cmd.Flags().Changed("max-fare") {
		criteria.MaxFare = opts.maxFare
	}
	controller.SetCriteria(criteria)
	controller.SetPage(opts.page)

	view := controller.View()
	if opts.asJSON {
		return writeJSON(out, view)
	}
	return writeTable(out, view, opts.lang)
}

// statusText localizes a status message by its state and phase
func statusText(status dashboard.Status, lang string) string {
	switch status.State {
	case dashboard.StateIdle:
		return i18n.Translate("dashboard.status.idle", lang)
	case dashboard.StateConnecting:
		return i18n.Translate(i18n.PhaseKey(status.Phase), lang)
	case dashboard.StateLoaded:
		return i18n.Translate("dashboard.status.loaded", lang)
	case dashboard.StateFailed:
		return i18n.Translate("dashboard.status.failed", lang)
	}
	return status.Message
}

func writeJSON(w io.Writer, view dashboard.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func writeTable(w io.Writer, view dashboard.View, lang string) error {
	page := view.Page
	fmt.Fprintf(w, "\n%s\n\n", i18n.Translate("dashboard.table.summary", lang,
		page.Total, page.Page, page.TotalPages, i18n.FormatAmount(view.FareCeiling, fareCurrency)))

	if len(page.Trips) == 0 {
		fmt.Fprintln(w, i18n.Translate("dashboard.table.empty", lang))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, i18n.Translate("dashboard.table.header", lang))
	for _, t := range page.Trips {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%.0f\t%s\t%s\t%s\t%d\n",
			t.TripID, t.Date, t.PickupPoint, t.DropoffPoint,
			t.DistanceKM, t.DurationMin, i18n.FormatAmount(t.Fare.Value(), fareCurrency),
			t.VehicleType, t.PaymentMethod, t.UserRating)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if view.Chart == nil || len(view.Chart.Datasets) == 0 {
		return nil
	}
	series := view.Chart.Datasets[0]
	fmt.Fprintf(w, "\n%s\n", i18n.Translate("dashboard.chart.fare", lang))
	for i, label := range view.Chart.Labels {
		fmt.Fprintf(w, "  %s  %s %.2f\n", label, bar(series.Data[i], view.FareCeiling), series.Data[i])
	}
	return nil
}

const (
	barWidth     = 30
	fareCurrency = "INR"
)

func bar(value, ceiling float64) string {
	if ceiling <= 0 || value <= 0 {
		return ""
	}
	n := int(value / ceiling * barWidth)
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("#", n)
}
