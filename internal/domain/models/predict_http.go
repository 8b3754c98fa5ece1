package models

// Request and response bodies for the prediction endpoint. Defined in
// domain for consistency and reuse.

// PredictRequest optionally overrides the artifact locations. All
// fields default to the fixed relative paths the deployment ships with.
type PredictRequest struct {
	ModelPath   string `json:"model_path" default:"artifacts/gold_model.json" validate:"omitempty,filepath"`
	ScalerXPath string `json:"scaler_x_path" default:"artifacts/gold_scaler_x.json" validate:"omitempty,filepath"`
	ScalerYPath string `json:"scaler_y_path" default:"artifacts/gold_scaler_y.json" validate:"omitempty,filepath"`
}

// PredictResponse is the wire form of a PredictionResult. Prices are
// rounded to 2 decimal places.
type PredictResponse struct {
	CurrentPrice   float64 `json:"current_price"`
	PredictedPrice float64 `json:"predicted_price"`
	PriceChange    float64 `json:"price_change"`
	Direction      string  `json:"direction"`
	Status         string  `json:"status"`
}
