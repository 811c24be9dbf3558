// Package fragments provides template path constants for organized template management
package fragments

// Template path constants, relative to ui/templates
const (
	// Page
	IndexPage = "index.html"

	// Layout templates
	Sidebar = "layout/sidebar.html"

	// Dashboard fragments
	Metrics     = "fragments/metrics.html"
	Heatmap     = "fragments/heatmap.html"
	ChartPanel  = "fragments/chart_panel.html"
	SampleTable = "fragments/sample_table.html"
)

// GetAllTemplatePaths returns all template paths for registration
func GetAllTemplatePaths() []string {
	return []string{
		IndexPage,
		Sidebar,
		Metrics,
		Heatmap,
		ChartPanel,
		SampleTable,
	}
}
