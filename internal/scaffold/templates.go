package scaffold

// Boilerplate templates rendered with {Name: projectName}.

const flaskApp = `from flask import Flask

app = Flask(__name__)


@app.route("/")
def index():
    return {"app": "{{.Name}}", "status": "ok"}


if __name__ == "__main__":
    app.run(debug=True, port=5000)
`

const flaskRequirements = `flask>=3.0
`

const expressPackageJSON = `{
  "name": "{{.Name}}",
  "version": "0.1.0",
  "private": true,
  "scripts": {
    "dev": "node --watch server.js",
    "start": "node server.js"
  },
  "dependencies": {
    "express": "^4.19.0"
  }
}
`

const expressServer = `const express = require("express");

const app = express();
const port = process.env.PORT || 5000;

app.get("/", (req, res) => {
  res.json({ app: "{{.Name}}", status: "ok" });
});

app.listen(port, () => {
  console.log("{{.Name}} listening on port " + port);
});
`

const vitePackageJSON = `{
  "name": "{{.Name}}",
  "version": "0.1.0",
  "private": true,
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "preview": "vite preview"
  },
  "dependencies": {
    "react": "^18.3.0",
    "react-dom": "^18.3.0"
  },
  "devDependencies": {
    "@vitejs/plugin-react": "^4.3.0",
    "vite": "^5.4.0"
  }
}
`

const viteIndexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <title>{{.Name}}</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.jsx"></script>
  </body>
</html>
`

const viteMainJSX = `import React from "react";
import { createRoot } from "react-dom/client";

createRoot(document.getElementById("root")).render(
  <h1>{{.Name}}</h1>
);
`

const viteConfig = `import { defineConfig } from "vite";
import react from "@vitejs/plugin-react";

export default defineConfig({
  plugins: [react()],
});
`

const goMain = `package main

import (
	"encoding/json"
	"log"
	"net/http"
)

func main() {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"app": "{{.Name}}", "status": "ok"})
	})
	log.Println("{{.Name}} listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", nil))
}
`

const goModFile = `module {{.Name}}

go 1.24
`

const readme = `# {{.Name}}

Scaffolded with launchkit. Start the dev server from the launchkit menu
or with ` + "`launchkit server start`" + `.
`

const gitignore = `node_modules/
venv/
__pycache__/
dist/
*.log
launchkit.json
`

// Addon templates, keyed by language where it matters.

const dockerfilePython = `FROM python:3.12-slim
WORKDIR /app
COPY requirements.txt .
RUN pip install --no-cache-dir -r requirements.txt
COPY . .
EXPOSE 5000
CMD ["python", "app.py"]
`

const dockerfileNode = `FROM node:20-alpine
WORKDIR /app
COPY package*.json ./
RUN npm ci --omit=dev
COPY . .
EXPOSE 5000
CMD ["npm", "start"]
`

const dockerfileGo = `FROM golang:1.24-alpine AS build
WORKDIR /src
COPY . .
RUN go build -o /out/app .

FROM alpine:3.20
COPY --from=build /out/app /usr/local/bin/app
EXPOSE 8080
CMD ["app"]
`

const githubActionsCI = `name: ci

on:
  push:
    branches: [main]
  pull_request:

jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Build
        run: echo "add build steps for {{.Name}}"
`
