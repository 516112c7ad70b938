package models

// All returns every model, in migration order.
func All() []interface{} {
	return []interface{}{
		&ProductModel{},
		&CustomerModel{},
		&ShopSettingsModel{},
		&CouponModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&DeliveryModel{},
		&PaymentGroupModel{},
		&PaymentEventModel{},
	}
}
