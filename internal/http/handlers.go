package http

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/forecast"
	"tally/internal/report"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	cats, err := s.allCategories(r.Context())
	if err != nil {
		// The form still works with seeds only.
		slog.ErrorContext(r.Context(), "Category list error", "error", err)
		cats = s.seedCategories
	}

	data := struct {
		Categories       []string
		FilterCategories []string
		Symbol           string
	}{
		Categories:       cats,
		FilterCategories: append([]string{core.CategoryAll}, cats...),
		Symbol:           s.symbol,
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		ErrorResponse(http.StatusBadRequest, "Invalid request format").Write(w)
		return
	}

	exp, msg := parseExpenseForm(r.Form)
	if msg != "" {
		UnprocessableEntityError(msg).Write(w)
		return
	}

	ref, err := s.appender.Append(r.Context(), exp)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense append error", "error", err,
			"date", exp.Date.String(), "category", exp.Category, "amount_cents", exp.Amount.Cents)
		InternalServerError("Failed to save expense").Write(w)
		return
	}

	// Every cached view may now be stale.
	s.summaryCache.Purge()
	s.forecastCache.Purge()

	NewHTMXResponse().
		TriggerExpenseCreated(ref).
		TriggerFormReset().
		BodyHTML(`<div class="success">Expense saved (` + template.HTMLEscapeString(ref) + `): ` +
			template.HTMLEscapeString(exp.Date.String()) + ` - ` +
			template.HTMLEscapeString(exp.Category) + ` - ` +
			template.HTMLEscapeString(formatAmount(exp.Amount.Cents, s.symbol)) + `</div>`).
		Write(w)
}

// handleExpensesTable renders the filtered records table partial.
func (s *Server) handleExpensesTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := ParseFilter(r.URL.Query())
	view, err := s.filteredView(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Failed to load expenses</div>`))
		return
	}

	type row struct {
		Date     string
		Category string
		Amount   string
	}
	data := struct {
		Rows  []row
		Count int
	}{Count: len(view)}
	for _, e := range view {
		data.Rows = append(data.Rows, row{
			Date:     e.Date.String(),
			Category: e.Category,
			Amount:   formatAmount(e.Amount.Cents, s.symbol),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "expenses_table.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "expenses_table.html")
		_, _ = w.Write([]byte(`<div class="placeholder">Failed to render expenses</div>`))
	}
}

// handleSummary renders the summary panel partial for the current filter.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := ParseFilter(r.URL.Query())
	sum, err := s.getSummary(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Failed to compute summary</div>`))
		return
	}

	// Scale category bars against the largest category.
	var maxCents int64
	for _, c := range sum.ByCategory {
		if c.Amount.Cents > maxCents {
			maxCents = c.Amount.Cents
		}
	}
	type catRow struct {
		Name, Amount string
		Width        int
	}
	data := struct {
		Total   string
		Average string
		Max     string
		Count   int
		Rows    []catRow
	}{
		Total:   formatAmount(sum.Total.Cents, s.symbol),
		Average: formatAmount(sum.Average.Cents, s.symbol),
		Max:     formatAmount(sum.Max.Cents, s.symbol),
		Count:   sum.Count,
	}
	for _, c := range sum.ByCategory {
		width := 0
		if maxCents > 0 && c.Amount.Cents > 0 {
			width = int((c.Amount.Cents*100 + maxCents/2) / maxCents)
			// Keep tiny slices visible.
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, catRow{
			Name:   c.Name,
			Amount: formatAmount(c.Amount.Cents, s.symbol),
			Width:  width,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "summary_panel.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary_panel.html")
		_, _ = w.Write([]byte(`<div class="placeholder">Failed to render summary</div>`))
	}
}

// handleForecast renders the insight panel partial: the next-month
// prediction over the current filtered view.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := ParseFilter(r.URL.Query())
	res, err := s.getForecast(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Forecast error", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Failed to compute forecast</div>`))
		return
	}

	data := struct {
		HasPrediction bool
		Prediction    string
		HasSafeLimit  bool
		SafeLimit     string
		Months        int
		Advice        string
	}{
		HasPrediction: res.HasPrediction,
		Months:        res.Months,
		Advice:        res.Advice,
	}
	if res.HasPrediction {
		data.Prediction = formatAmount(res.Prediction.Cents, s.symbol)
	}
	if res.SafeLimit.Cents > 0 {
		data.HasSafeLimit = true
		data.SafeLimit = formatAmount(res.SafeLimit.Cents, s.symbol)
	}

	if err := s.templates.ExecuteTemplate(w, "insight_panel.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "insight_panel.html")
		_, _ = w.Write([]byte(`<div class="placeholder">Failed to render insight</div>`))
	}
}

// filteredView loads all records and applies the filter, preserving order.
func (s *Server) filteredView(ctx context.Context, filter core.Filter) ([]core.Expense, error) {
	items, err := s.lister.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return filter.Apply(items), nil
}

func (s *Server) getSummary(ctx context.Context, filter core.Filter) (report.Summary, error) {
	key := filterKey(filter)
	if sum, found := s.summaryCache.Get(key); found {
		slog.DebugContext(ctx, "Summary cache hit", "filter", key)
		return sum, nil
	}

	view, err := s.filteredView(ctx, filter)
	if err != nil {
		return report.Summary{}, err
	}
	sum := report.Summarize(view)
	s.summaryCache.Set(key, sum)
	slog.DebugContext(ctx, "Summary cached", "filter", key, "count", sum.Count, "total_cents", sum.Total.Cents)
	return sum, nil
}

func (s *Server) getForecast(ctx context.Context, filter core.Filter) (forecast.Result, error) {
	key := filterKey(filter)
	if res, found := s.forecastCache.Get(key); found {
		slog.DebugContext(ctx, "Forecast cache hit", "filter", key)
		return res, nil
	}

	view, err := s.filteredView(ctx, filter)
	if err != nil {
		return forecast.Result{}, err
	}
	// An empty filtered view falls back to the full dataset, so the insight
	// panel stays useful while a narrow filter is active.
	if len(view) == 0 && !filter.IsZero() {
		view, err = s.filteredView(ctx, core.Filter{})
		if err != nil {
			return forecast.Result{}, err
		}
	}

	res := forecast.PredictNextMonth(report.MonthlyTotals(view), s.symbol)
	s.forecastCache.Set(key, res)
	slog.DebugContext(ctx, "Forecast cached", "filter", key, "months", res.Months, "prediction_cents", res.Prediction.Cents)
	return res, nil
}

// allCategories unions the configured seed taxonomy with the categories
// observed in the data.
func (s *Server) allCategories(ctx context.Context) ([]string, error) {
	items, err := s.lister.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(s.seedCategories))
	for _, c := range s.seedCategories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, c := range report.Categories(items) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
