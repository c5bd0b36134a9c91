//go:build !race

package userauth

// DefaultPasswordCost is the bcrypt work factor used when none is configured
const DefaultPasswordCost = 10
