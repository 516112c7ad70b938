// Package payment implements the payment provider gateways: the Barion Smart
// Gateway REST client and Stripe hosted checkout with webhook verification.
package payment
