package main

import (
	api "github.com/caiocardoso28/flask-project/api"
)

func main() {
	api.Run()
}
