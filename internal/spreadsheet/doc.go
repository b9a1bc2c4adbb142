// Package spreadsheet provides a client for the Google Sheets API.
//
// # Overview
//
// griddy reads its queries from the first column of a spreadsheet. This
// package wraps the generated google.golang.org/api/sheets/v4 service with
// the few things griddy needs: credential selection, a request timeout and
// user-facing error messages.
//
// # Client Usage
//
//	client, err := spreadsheet.NewClient(ctx, spreadsheet.Options{APIKey: key})
//	if errors.Is(err, spreadsheet.ErrNoCredentials) {
//		// run from the static list instead
//	}
//
//	ss, err := client.Fetch(ctx, documentID)
//	if err != nil {
//		notify(spreadsheet.Message(err))
//	}
//
// # Credentials
//
// A service-account or authorized-user JSON file (credentials_file) takes
// precedence over an API key (api_key). An API key only reads spreadsheets
// that are shared publicly. With neither configured NewClient returns
// ErrNoCredentials and griddy falls back to its static query list.
//
// # Request Handling
//
// All requests:
//   - Ask for the read-only spreadsheets scope
//   - Request full grid data (includeGridData=true)
//   - Include User-Agent: griddy/0.1
//   - Time out after 20 seconds
//   - Return wrapped errors naming the document that failed
//
// # Error Handling
//
// Message extracts the provider's error text from *googleapi.Error, such as
// "Requested entity was not found." for an unknown document ID. Timeouts and
// transport failures fall back to a generic description.
//
// # Testing
//
// The Fetcher interface lets callers substitute a fake. The client itself is
// tested against an httptest server via Options.Endpoint.
package spreadsheet
