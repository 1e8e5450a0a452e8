/*
Package flocksdk is a Go client for the flock HTTP API.

# SDKClient vs Session

  - SDKClient: unauthenticated calls (health, password reset) and sign in
  - Session: calls made as a signed in user

	client := flocksdk.NewSDKClient("https://flock.example.org")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Sign in to create a session
	session, err := client.Login(ctx, flocksdk.LoginRequest{Email: email, Password: password})

A Session carries the opaque session token the server issued in the
flock_session cookie and sends it with every request:

	me, err := session.Me(ctx)
	person, err := session.CreatePerson(ctx, flocksdk.PersonInput{FirstName: "Anna", LastName: "Smith"})

# Two-factor sign in

When the account has two-factor authentication enabled, Login fails with an
*APIError whose MFARequired is set. Retry with a code:

	session, err := client.Login(ctx, req)
	var apiErr *flocksdk.APIError
	if errors.As(err, &apiErr) && apiErr.MFARequired {
		req.TOTPCode = code
		session, err = client.Login(ctx, req)
	}

# Errors

Every non-2xx response becomes an *APIError carrying the status code, the
server's message, per field validation messages and, for 429s, how long to
wait. IsNotFound, IsForbidden and IsPlanLimit cover the common checks.
*/
package flocksdk
