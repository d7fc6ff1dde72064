package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"sync"
	"time"
)

// 业务码，与 pkg/response 保持一致
const (
	codeSuccess          = 0
	codeNoEligible       = 30002
	codeDrawInProgress   = 30004
	defaultConcurrency   = 200
	defaultClientTimeout = 10 * time.Second
)

var httpClient *http.Client

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "admin API base URL")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	site := flag.String("site", "", "site ID")
	giveaway := flag.String("giveaway", "", "giveaway ID to draw against")
	concurrency := flag.Int("n", defaultConcurrency, "number of concurrent draw requests")
	flag.Parse()

	if *site == "" || *giveaway == "" {
		fmt.Println("-site and -giveaway are required")
		os.Exit(2)
	}

	// 优化 HTTP Client 配置，cookie jar 保存登录会话
	jar, _ := cookiejar.New(nil)
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = *concurrency
	t.MaxIdleConnsPerHost = *concurrency
	t.MaxConnsPerHost = *concurrency
	httpClient = &http.Client{Transport: t, Jar: jar, Timeout: defaultClientTimeout}

	// 1. 管理员登录
	if err := login(*baseURL, *email, *password); err != nil {
		fmt.Printf("登录失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("开始压测：%d 个并发请求同时抽奖 (site: %s, giveaway: %s)...\n", *concurrency, *site, *giveaway)

	// 2. 并发抽奖
	var wg sync.WaitGroup
	var mu sync.Mutex
	outcomes := make(map[int]int)
	failCount := 0

	drawURL := fmt.Sprintf("%s/api/sites/%s/giveaways/%s/draw", *baseURL, *site, *giveaway)
	start := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := draw(drawURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failCount++
				return
			}
			outcomes[code]++
		}()
	}

	wg.Wait()
	duration := time.Since(start)

	// 3. 校验中奖记录没有重复邮箱
	winners, err := listWinners(*baseURL, *site, *giveaway)
	if err != nil {
		fmt.Printf("获取中奖记录失败: %v\n", err)
		os.Exit(1)
	}
	seen := make(map[string]bool, len(winners))
	duplicates := 0
	for _, w := range winners {
		if seen[w.Email] {
			duplicates++
		}
		seen[w.Email] = true
	}

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d, QPS: %.2f\n", *concurrency, float64(*concurrency)/duration.Seconds())
	fmt.Printf("抽中: %d\n", outcomes[codeSuccess])
	fmt.Printf("抽奖进行中被拒绝: %d\n", outcomes[codeDrawInProgress])
	fmt.Printf("无可抽参与者: %d\n", outcomes[codeNoEligible])
	fmt.Printf("请求失败: %d\n", failCount)
	fmt.Printf("中奖记录: %d, 重复邮箱: %d (预期: 0)\n", len(winners), duplicates)
	fmt.Println("--------------------------------------------------")

	if duplicates > 0 {
		os.Exit(1)
	}
}

func login(baseURL, email, password string) error {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := httpClient.Post(baseURL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	env, err := decode(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK || env.Code != codeSuccess {
		return fmt.Errorf("status %d: %s", resp.StatusCode, env.Message)
	}
	return nil
}

func draw(url string) (int, error) {
	resp, err := httpClient.Post(url, "application/json", nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	env, err := decode(resp)
	if err != nil {
		return 0, err
	}
	// 可恢复的业务结果返回 HTTP 200 + 非 0 业务码
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %d: %s", resp.StatusCode, env.Message)
	}
	return env.Code, nil
}

type winner struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func listWinners(baseURL, site, giveaway string) ([]winner, error) {
	resp, err := httpClient.Get(fmt.Sprintf("%s/api/sites/%s/winners?giveaway_id=%s", baseURL, site, giveaway))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	env, err := decode(resp)
	if err != nil {
		return nil, err
	}
	var winners []winner
	if err := json.Unmarshal(env.Data, &winners); err != nil {
		return nil, fmt.Errorf("decode winners: %w", err)
	}
	return winners, nil
}

func decode(resp *http.Response) (*envelope, error) {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}
