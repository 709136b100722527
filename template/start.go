package template

import (
	"github.com/flosch/pongo2/v6"
)

var startTemplate = `
<b>KraiNode RPC Playground</b> 🛰

Pick a chain, network and provider, build a JSON-RPC request and send it
straight from Telegram. Responses come back as a collapsible tree.

Your selection, custom endpoint and the last 25 calls are remembered
between sessions. {% if botUserName %}Share: https://t.me/{{ botUserName }}{% endif %}
`

var helpTemplate = `
<b>Commands</b>
/menu  show the playground
/chains  pick a chain
/method  pick a method template
/presets  load a preset request
/request  show the request body
/send  send the request
/probe  check the endpoint
/custom &lt;url&gt;  use a custom RPC URL, "-" clears it
/headers &lt;json&gt;  headers for the custom URL, "-" clears them
/code  code snippets for the request
/history  recent calls
/clear  clear all local data

Send any JSON text to replace the request body, or an http(s) URL to use
it as a custom endpoint.
`

func RanderStart(botUserName string) (string, error) {
	return rander(startTemplate, pongo2.Context{
		"botUserName": botUserName,
	})
}

func RanderHelp() (string, error) {
	return rander(helpTemplate, pongo2.Context{})
}
