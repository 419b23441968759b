package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const (
	baseURL = "http://localhost:8080"
	// id одного из заказов, созданных checkout-generator
	fixedID = "00000000-0000-0000-0000-000000000000"
)

var paths = []string{
	"/medicines",
	"/medicines/med-1",
	"/pharmacies",
	"/orders/",
}

func main() {
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(doRequest)
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomID(length int) string {
	chars := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	id := make([]rune, length)
	for i := range id {
		id[i] = chars[rand.Intn(len(chars))]
	}
	return string(id)
}

func doRequest() {
	path := paths[rand.Intn(len(paths))]
	if path == "/orders/" {
		id := fixedID
		if rand.Intn(5) == 0 {
			id = randomID(12)
		}
		path += id
	}

	url := baseURL + path
	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
	} else {
		fmt.Println("GET", url, "->", resp.Status)
		resp.Body.Close()
	}
}
