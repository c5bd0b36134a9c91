//go:build race

package userauth

import "golang.org/x/crypto/bcrypt"

// DefaultPasswordCost is lowered for race-enabled builds so test suites can
// run with strict timeouts.
const DefaultPasswordCost = bcrypt.MinCost
