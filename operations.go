package cimsparql

import (
	"context"

	"github.com/statnett/cimsparql/pkg/table"
)

// FullModel returns the profile header statements of the loaded models.
func (m *Model) FullModel(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "full_model", nil)
}

// MarketDates returns activation dates for the market definition sets.
func (m *Model) MarketDates(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "market_dates", nil)
}

// BusData returns topological nodes with voltage and substation data.
func (m *Model) BusData(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "bus", nil)
}

// Loads returns conform and non-conform loads with their injections.
func (m *Model) Loads(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "loads", nil)
}

// ACLines returns AC line segments with impedance and limits.
func (m *Model) ACLines(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "ac_lines", nil)
}

// SeriesCompensators returns series compensators with reactance.
func (m *Model) SeriesCompensators(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "series_compensators", nil)
}

// Transformers returns power transformer windings, one row per end.
func (m *Model) Transformers(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "transformers", nil)
}

// SynchronousMachines returns synchronous machines with ratings and market
// coupling.
func (m *Model) SynchronousMachines(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "synchronous_machines", nil)
}

// WindGeneratingUnits returns wind generating units with operating ranges.
func (m *Model) WindGeneratingUnits(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "wind_generating_units", nil)
}

// Converters returns HVDC converters with their nodes and injections.
func (m *Model) Converters(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "converters", nil)
}

// Switches returns breakers and disconnectors with open state.
func (m *Model) Switches(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "switches", nil)
}

// Regions returns sub-geographical regions and their parents.
func (m *Model) Regions(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "regions", nil)
}

// Exchange returns cross-border lines with flow from the state profile.
func (m *Model) Exchange(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "exchange", nil)
}

// BranchNodeWithdraw returns power withdrawn through disconnected branch
// ends.
func (m *Model) BranchNodeWithdraw(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "branch_node_withdraw", nil)
}

// Coordinates returns position points for power system resources.
func (m *Model) Coordinates(ctx context.Context) (*table.TypedTable, error) {
	return m.Query(ctx, "coordinates", nil)
}
