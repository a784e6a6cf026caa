package templates

import (
	"bytes"
	"text/template"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/pkg/jsast"
)

// GlobalModel is a state module registered with the app at startup.
type GlobalModel struct {
	// Ident is the local binding name, e.g. "global0".
	Ident string

	// Specifier is the import path relative to the generated module.
	Specifier string
}

// BootstrapData fills the bootstrap module template.
type BootstrapData struct {
	// ConfigModule is the specifier of the generated route manifest.
	ConfigModule string

	// Globals are imported at the top of the module and registered after
	// the router is installed, in order.
	Globals []GlobalModel
}

var bootstrapTemplate = template.Must(template.New("router").
	Funcs(template.FuncMap{
		"quote": func(s string) string { return jsast.Quote(s, '\'') },
	}).
	Parse(bootstrapSource))

// RenderBootstrap renders the routing bootstrap module.
func RenderBootstrap(data BootstrapData) ([]byte, error) {
	var buf bytes.Buffer
	if err := bootstrapTemplate.Execute(&buf, data); err != nil {
		return nil, errors.New("E140").Wrap(err)
	}
	return buf.Bytes(), nil
}

const bootstrapSource = `/**
 * This file is generated by routegen. DO NOT EDIT.
 */
import React from 'react'
import dva from 'dva'
import { Redirect, Route, Router, Switch } from 'dva/router'
import dynamic from 'dva/dynamic'
import config from {{quote .ConfigModule}}
{{- range .Globals}}
import {{.Ident}} from {{quote .Specifier}};
{{- end}}

function makeRoutes(config, app) {
  const routes = []
  for (const item of config) {
    let route
    if (item.component) {
      const WrappedCom = dynamic({ app, component: item.component, models: item.models })
      if (item.routes) {
        route = (<Route exact={false} path={item.path} key={item.path} render={() => (<WrappedCom>{makeRoutes(item.routes, app)}</WrappedCom>)}/>)
      } else {
        route = (<Route key={item.path} exact={true} path={item.path} component={WrappedCom}/>)
      }
    } else if (item.to) {
      route = (<Redirect key={item.path} exact={true} path={item.path} to={item.to}/>)
    }
    if (route) {
      routes.push(route)
    }
  }
  return routes
}

const app = dva()
app.router(({ history, app }) => {
  return (
    <Router history={history}>
      <Switch>
        {makeRoutes(config, app)}
      </Switch>
    </Router>)
})
{{- range .Globals}}
app.model({{.Ident}})
{{- end}}

export default app;
`
