package cart

// カートの1明細。IDがマージキーで、カート内で一意。
// UnitPriceは最小通貨単位のint64（浮動小数の誤差を避ける）。
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`

	//表示用メタデータ（計算には使わない）
	Image     string `json:"image,omitempty"`
	Category  string `json:"category,omitempty"`
	ProductID int64  `json:"product_id,omitempty"`
}
