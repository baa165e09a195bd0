// Package webhook verifies and decodes webhooks sent by Lago.
//
// Lago signs each delivery either with an RS256 JWT, verified against the key
// returned by lago.WebhooksClient.PublicKey, or with an HMAC-SHA256 of the
// body keyed by the organization's webhook secret. Handler wires a Verifier
// into a gin route:
//
//	key, err := cli.Webhooks().PublicKey(ctx)
//	if err != nil { return err }
//
//	router := webhook.NewRouter("/webhooks/lago", webhook.NewJWTVerifier(key),
//	  func(ctx context.Context, e webhook.Event) error {
//	    var invoice lago.Invoice
//	    if e.ObjectType == "invoice" {
//	      return e.Decode(&invoice)
//	    }
//	    return nil
//	  })
package webhook
