package model

// 注文ステータス（closedなint enum）
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusConfirmed  OrderStatus = 1
	OrderStatusProcessing OrderStatus = 2
	OrderStatusShipped    OrderStatus = 3
	OrderStatusDelivered  OrderStatus = 4
	OrderStatusCancelled  OrderStatus = 5
)

var statusLabels = map[OrderStatus]string{
	OrderStatusPending:    "注文確認中",
	OrderStatusConfirmed:  "注文確定",
	OrderStatusProcessing: "処理中",
	OrderStatusShipped:    "発送済み",
	OrderStatusDelivered:  "配送完了",
	OrderStatusCancelled:  "キャンセル",
}

// Labelは表示用ラベル。範囲外は「不明」
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "不明"
}

// IsValidはenumの範囲内かどうか
func (s OrderStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// OrderStatusFromIntは外部入力のintをenumに変換する
func OrderStatusFromInt(v int) (OrderStatus, bool) {
	s := OrderStatus(v)
	return s, s.IsValid()
}
