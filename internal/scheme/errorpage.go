package scheme

import (
	"fmt"
	"html"
)

const errorPage = `<!DOCTYPE html>
<html>
<head>
  <meta content="width=device-width, initial-scale=1, maximum-scale=1" name="viewport">
  <title>%v</title>
  <style>
    body {
      color: #666;
      text-align: center;
      font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
      margin: auto;
      font-size: 14px;
    }

    h1 {
      font-size: 36px;
      font-weight: 400;
      color: #456;
    }

    .url {
      color: #456;
      font-family: monospace;
    }

    .container {
      margin: auto 20px;
      max-width: 800px;
    }
  </style>
</head>

<body>
  <h1>%v</h1>
  <div class="container">
    <p class="url">%v</p>
    <p>%v</p>
  </div>
</body>
</html>
`

// ErrorPage renders the standard error page used for scheme-level
// failures. All three fields are escaped.
func ErrorPage(title, url, message string) string {
	return fmt.Sprintf(errorPage,
		html.EscapeString(title),
		html.EscapeString(title),
		html.EscapeString(url),
		html.EscapeString(message))
}

func wrongBackendResponse(r *Request) *Response {
	url := r.URL()
	return TextResponse("text/html", ErrorPage(
		"Error while opening app:// URL",
		url,
		fmt.Sprintf("%s is not available with this backend", url)))
}
