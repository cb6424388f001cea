package api

import "net/http"

// handleBusinessIntelligence serves the strategy dashboard payload.
// Most figures are static projections; processing_speed and
// segment_requests are live.
func (s *Server) handleBusinessIntelligence(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorBody("Bias engine not available"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"revenue_metrics": map[string]any{
			"mrr":           45000,
			"arr":           540000,
			"growth_rate":   15.2,
			"ltv_cac_ratio": 7.8,
		},
		"user_metrics": map[string]any{
			"active_users":     5000,
			"conversion_rate":  18.5,
			"churn_rate":       3.2,
			"nps_score":        72,
			"segment_requests": s.business.ActiveUsers(),
		},
		"product_metrics": map[string]any{
			"feature_adoption":  78.5,
			"user_satisfaction": 4.6,
			"api_usage":         50000,
			"processing_speed":  s.metrics.ProcessingSpeed(),
		},
		"market_metrics": map[string]any{
			"market_penetration":   0.2,
			"competitive_position": 1,
			"brand_recognition":    23,
			"partnership_pipeline": 8,
		},
	})
}
