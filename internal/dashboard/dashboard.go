package dashboard

// Stats is the admin overview: headline counts, settled revenue, the order
// pipeline grouped by status, and the best-selling products.
type Stats struct {
	TotalUsers     int            `json:"totalUsers"`
	TotalProducts  int            `json:"totalProducts"`
	TotalOrders    int            `json:"totalOrders"`
	TotalPayments  int            `json:"totalPayments"`
	TotalRevenue   float64        `json:"totalRevenue"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
	TopProducts    []TopProduct   `json:"topProducts"`
}

// TopProduct is one row of the best-seller list, ranked by total quantity
// ordered across all orders.
type TopProduct struct {
	ProductID     int    `json:"productId"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"totalQuantity"`
}
