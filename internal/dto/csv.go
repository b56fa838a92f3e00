package dto

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteRankingCSV flattens a ranked cohort for spreadsheet export.
func WriteRankingCSV(w io.Writer, cohort []CourierPerformance) error {
	cw := csv.NewWriter(w)
	header := []string{
		"rank", "courier_id", "courier_name",
		"total_orders", "delivered", "canceled", "partial", "returned", "hand_to_hand",
		"total_revenue", "delivered_revenue",
		"completion_rate", "cancellation_rate", "return_rate",
		"returned_then_delivered", "returned_then_canceled", "score",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range cohort {
		record := []string{
			strconv.Itoa(p.Rank),
			strconv.Itoa(p.CourierID),
			p.CourierName,
			strconv.Itoa(p.TotalOrders),
			strconv.Itoa(p.DeliveredOrders),
			strconv.Itoa(p.CanceledOrders),
			strconv.Itoa(p.PartialOrders),
			strconv.Itoa(p.ReturnedOrders),
			strconv.Itoa(p.HandToHandOrders),
			p.TotalRevenue.StringFixed(2),
			p.DeliveredRevenue.StringFixed(2),
			strconv.FormatFloat(p.CompletionRate, 'f', 1, 64),
			strconv.FormatFloat(p.CancellationRate, 'f', 1, 64),
			strconv.FormatFloat(p.ReturnRate, 'f', 1, 64),
			strconv.Itoa(p.Lifecycle.ReturnedThenDelivered),
			strconv.Itoa(p.Lifecycle.ReturnedThenCanceled),
			strconv.FormatFloat(p.Score, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
