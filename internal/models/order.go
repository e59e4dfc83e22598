package models

// Order is embedded in its owning User and has no identity of its own.
type Order struct {
	ProductName string  `bson:"productName" json:"productName"`
	Price       float64 `bson:"price" json:"price"`
	Quantity    int     `bson:"quantity" json:"quantity"`
}

type OrderInput struct {
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (in OrderInput) Order() Order {
	return Order{
		ProductName: in.ProductName,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
}
