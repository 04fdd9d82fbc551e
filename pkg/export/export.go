// Package export serialises itinerary plans for files and terminals.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kilianp07/vrptw/core/itinerary"
)

// Format names accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"
)

// Write dispatches to the writer of the given format.
func Write(w io.Writer, format string, plan itinerary.Plan) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, plan)
	case FormatCSV:
		return WriteCSV(w, plan)
	case FormatText:
		return WriteText(w, plan)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON writes the plan to w in indented JSON format.
func WriteJSON(w io.Writer, plan itinerary.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

var csvHeader = []string{
	"run_id", "vehicle", "leg", "from_x", "from_y", "to_x", "to_y", "customer_id",
	"travel_distance", "arrival_time", "waiting_time", "service_time", "departure_time", "remaining_capacity",
}

// WriteCSV writes one row per leg. The return leg of each route has an
// empty customer_id.
func WriteCSV(w io.Writer, plan itinerary.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	itoa := strconv.Itoa
	for _, r := range plan.Routes {
		for i, l := range r.Legs {
			customer := itoa(l.CustomerID)
			if l.ToDepot {
				customer = ""
			}
			rec := []string{
				plan.RunID, itoa(r.Vehicle), itoa(i),
				itoa(l.From.X), itoa(l.From.Y), itoa(l.To.X), itoa(l.To.Y), customer,
				itoa(l.TravelDistance), itoa(l.ArrivalTime), itoa(l.WaitingTime),
				itoa(l.ServiceTime), itoa(l.DepartureTime), itoa(l.RemainingCapacity),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText prints a human readable itinerary per vehicle followed by the
// total distance.
func WriteText(w io.Writer, plan itinerary.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range plan.Routes {
		depot := r.Legs[len(r.Legs)-1].To
		fmt.Fprintf(tw, "Vehicle %d\tdepot %s\tload %d/%d\n", r.Vehicle, depot, r.Demand, r.Capacity)
		fmt.Fprintln(tw, "  from\tto\tcustomer\ttravel\tarrival\twaiting\tservice\tdeparture\tremaining")
		for _, l := range r.Legs {
			customer := strconv.Itoa(l.CustomerID)
			if l.ToDepot {
				customer = "depot"
			} else if l.Late {
				customer += " (late)"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
				l.From, l.To, customer, l.TravelDistance, l.ArrivalTime, l.WaitingTime,
				l.ServiceTime, l.DepartureTime, l.RemainingCapacity)
		}
		fmt.Fprintf(tw, "  distance %d\tservice %d\treturn %d\n\n", r.Distance, r.ServiceTime, r.ReturnTime)
	}
	fmt.Fprintf(tw, "Total distance: %d\n", plan.TotalDistance)
	if len(plan.Unassigned) > 0 {
		ids := make([]string, len(plan.Unassigned))
		for i, id := range plan.Unassigned {
			ids[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(tw, "Unassigned customers: %s\n", strings.Join(ids, ", "))
	}
	return tw.Flush()
}
