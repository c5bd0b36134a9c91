package userauth_test

import (
	"fmt"

	userauth "github.com/kodelab/go-userauth"
)

func ExampleTokenAuthority() {
	ta, err := userauth.NewTokenAuthority([]byte("example-secret"))
	if err != nil {
		panic(err)
	}

	token, err := ta.CreateToken(userauth.Claims{
		"userId": "u1",
		"data":   map[string]any{"role": "admin"},
	}, 5)
	if err != nil {
		panic(err)
	}

	result, err := ta.VerifyToken(token)
	if err != nil {
		panic(err)
	}

	fmt.Println(result.Verified)
	fmt.Println(result.Data.UserID)
	fmt.Println(result.Data.Data["role"])

	// Output:
	// true
	// u1
	// admin
}

func ExampleGate() {
	logger := &recordingLogger{}
	ta, _ := userauth.NewTokenAuthority([]byte("example-secret"), userauth.WithLogger(logger))
	gate, _ := userauth.NewGate(ta, userauth.GateConfig{Logger: logger})

	token, _ := ta.CreateToken(userauth.Claims{"userId": 7}, 5)

	anonymous := newRouterContext()
	_ = gate.Intercept(anonymous)

	signedIn := newRouterContext().withHeader("Authorization", "Bearer "+token)
	_ = gate.Intercept(signedIn)
	userID, _ := userauth.UserIDFromCtx(signedIn, gate.ContextKey())

	fmt.Println(anonymous.code, anonymous.NextCalled)
	fmt.Println(signedIn.NextCalled, userID)

	// Output:
	// 401 false
	// true 7
}
