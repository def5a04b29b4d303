package create_checkout

// Request модель запроса на создание checkout-сессии.
// Purpose: "full" - оплата всей суммы, "balance" - доплата остатка.
type Request struct {
	BookingID int64
	Purpose   string
}

// Response модель ответа со ссылкой на оплату
type Response struct {
	SessionID   string
	CheckoutURL string
	AmountCents int64
}
