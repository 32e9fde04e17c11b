package pricing

// 固定ビジネスルール。
// 送料はカート内容に関わらず一律（重量・距離では計算しない）。
// free_shipping_threshold という管理設定は存在するが参照しない（現行仕様）。
const (
	FlatShippingFee int64 = 150

	//消費税率 8%（taxRateNum/taxRateDen）
	taxRateNum int64 = 8
	taxRateDen int64 = 100
)

// 課金対象1件。カート全量でもクイック購入の1件でも同じ形。
type Item struct {
	UnitPrice int64
	Quantity  int64
}

// 注文金額の内訳。保存しない派生値で、毎回カートから計算する。
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	Tax         int64 `json:"tax"`
	Total       int64 `json:"total"`
}

// ComputeTotals は内訳を計算する純関数。入力は変更しない。
// 税は切り捨て（銀行丸めではない）。空列ならsubtotal=0でも送料はかかる。
func ComputeTotals(items []Item) Totals {
	var subtotal int64
	for _, it := range items {
		subtotal += it.UnitPrice * it.Quantity
	}

	tax := subtotal * taxRateNum / taxRateDen

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: FlatShippingFee,
		Tax:         tax,
		Total:       subtotal + FlatShippingFee + tax,
	}
}
