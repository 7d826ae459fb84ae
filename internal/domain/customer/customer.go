// Package customer defines the customer entity.
package customer

import "fmt"

// Customer is identified by phone number. The loyalty flag unlocks a
// discount above a spend threshold and may be toggled at any time.
type Customer struct {
	Phone         string
	Name          string
	LoyaltyMember bool
}

// New creates a customer with loyalty disabled.
func New(phone, name string) *Customer {
	return &Customer{Phone: phone, Name: name}
}

func (c *Customer) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Phone)
}
