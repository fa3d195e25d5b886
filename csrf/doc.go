// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package csrf provides double-submit CSRF tokens.

# Tokens

Tokens are random 32-byte (256-bit) secrets, URL-safe base64 without padding:

	token, err := csrf.GenerateToken()

The token is stored in the csrftoken cookie. Forms echo it back in the
csrfmiddlewaretoken field; scripts send it in the X-CSRFToken header.

# Validation

	err := csrf.ValidateToken(cookieToken, submitted)

Returns ErrMissingToken when either side is empty and ErrInvalidToken when
the values are malformed or differ. Comparison is constant time.
*/
package csrf
