// Package baasbox is a client for the REST API of a BaasBox server.
//
// # Overview
//
// A Client holds the server URL, the application code and the session token
// of the logged in user. Every call goes through one dispatcher that builds
// the URL, attaches the X-BAASBOX-APPCODE and X-BB-SESSION headers, encodes
// the body and unwraps the "data" envelope of the reply.
//
//	client, err := baasbox.New(baasbox.Config{
//		BaseURL: "http://localhost:9000",
//		AppCode: "1234567890",
//	})
//	if err != nil {
//		return err
//	}
//	if _, err := client.Login(ctx, "cesare", "password"); err != nil {
//		return err
//	}
//	me, err := client.Me(ctx)
//
// # Dispatcher
//
// The primitives Get, Put, PutForm, PostJSON, PostForm and Delete, and the
// general Do, cover every endpoint. URLs are assembled as
//
//	baseURL + "/" + resource [+ "/" + argument] [+ "?" + query]
//
// JSON calls send the app code as a header. Form calls send it in the body as
// "appcode", which is what the server expects for login. Deletes resolve to
// DeletedAck.
//
// Dispatch runs a call in the background and returns a Future; the session
// token is read when Dispatch is called.
//
// # Sessions
//
// Signup and Login store the returned X-BB-SESSION, Logout clears it. No
// other method touches the session. Init replaces the whole configuration.
//
// # Error Handling
//
//   - *ConfigError: returned by New and Init, never from a request.
//   - *TransportError: the server could not be reached.
//   - *ServerError: the server answered with a non-2xx status. StatusCode and
//     the untouched body are available for the caller to act on.
//
// The client never retries and sets no timeout unless Config.Timeout is set;
// bound calls with the context instead.
//
// # Endpoints
//
// Users:
//   - POST   /user, /login, /logout
//   - GET    /me, /user/:username, /users
//   - PUT    /me, /me/password, /me/username, /me/suspend
//   - GET    /user/:username/password/reset
//   - PUT    /admin/user/suspend/:username, /admin/user/activate/:username
//
// Friendship:
//   - POST   /follow/:username
//   - DELETE /follow/:username
//   - GET    /following/:username, /followers/:username
//
// Documents:
//   - POST   /document/:collection
//   - GET    /document/:collection[/:id], /document/:collection/count
//   - PUT    /document/:collection/:id[/.:field]
//   - DELETE /document/:collection/:id
//   - PUT    /document/:collection/:id/:action/user|role/:name
//   - DELETE /document/:collection/:id/:action/user|role/:name
//
// Links:
//   - POST   /link/:source/:label/:destination
//   - GET    /link[/:id]
//   - DELETE /link/:id
//
// Social:
//   - GET    /social
//   - POST   /social/:network
//   - PUT    /social/:network
//   - DELETE /social/:network
//
// Push:
//   - PUT    /push/enable/:platform/:token, /push/disable/:token
//   - POST   /push/message
//
// Administration:
//   - GET    /admin/configuration/dump.json, /admin/configuration/:section
//   - PUT    /admin/configuration/:section/:key/:value
//   - GET    /admin/endpoints[/:group]
//   - PUT    /admin/endpoints/:group/enabled
//   - DELETE /admin/endpoints/:group/enabled
//
// # Security
//
// The session token and the social secrets are never logged or marshaled.
package baasbox
