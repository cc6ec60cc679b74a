package insight

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// ErrQuotaExhausted дневной лимит исчерпан, повторять бессмысленно
var ErrQuotaExhausted = errors.New("QUOTA_EXHAUSTED")

// ErrTransient временный отказ, повторы не помогли
var ErrTransient = errors.New("TRANSIENT_FAILURE")

// Class категория ошибки вызова
type Class int

const (
	// Permanent ошибка без повторов
	Permanent Class = iota
	// Transient ошибка ограничения частоты, повторяем с задержкой
	Transient
	// QuotaExhausted лимит исчерпан, сразу возвращаем ErrQuotaExhausted
	QuotaExhausted
)

func (c Class) String() string {
	switch c {
	case Transient:
		return "transient"
	case QuotaExhausted:
		return "quota_exhausted"
	}
	return "permanent"
}

// Classify разбирает текст ошибки так же, как это делает клиент дашборда
func Classify(err error) Class {
	if err == nil {
		return Permanent
	}
	if errors.Is(err, ErrQuotaExhausted) {
		return QuotaExhausted
	}
	if errors.Is(err, ErrTransient) {
		return Transient
	}
	text := strings.ToLower(err.Error())
	rateLimited := strings.Contains(text, "429") ||
		strings.Contains(text, "quota") ||
		strings.Contains(text, "resource_exhausted") ||
		strings.Contains(text, "limit")
	if !rateLimited {
		return Permanent
	}
	if strings.Contains(text, "exceeded") || strings.Contains(text, "daily") || strings.Contains(text, "check your plan") {
		return QuotaExhausted
	}
	return Transient
}

// RetryPolicy экспоненциальная задержка с джиттером
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxJitter   time.Duration
	Classify    func(error) Class

	// Sleep и Jitter подменяются в тестах
	Sleep  func(ctx context.Context, d time.Duration) error
	Jitter func(max time.Duration) time.Duration
}

// DefaultRetryPolicy 3 попытки, 3s, 6s, плюс до 1s джиттера
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   3 * time.Second,
		Multiplier:  2,
		MaxJitter:   time.Second,
		Classify:    Classify,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return rand.N(max)
}

// Do выполняет fn по политике. Permanent возвращается сразу как есть,
// QuotaExhausted превращается в ErrQuotaExhausted, Transient после последней попытки
// оборачивается в ErrTransient.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	classify := p.Classify
	if classify == nil {
		classify = Classify
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	jitter := p.Jitter
	if jitter == nil {
		jitter = randomJitter
	}
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}

	delay := p.BaseDelay
	var lastErr error
	for i := 0; i < attempts; i++ {
		text, err := fn(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err

		switch classify(err) {
		case QuotaExhausted:
			return "", fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
		case Permanent:
			return "", err
		}

		if i == attempts-1 {
			break
		}
		if err := sleep(ctx, delay+jitter(p.MaxJitter)); err != nil {
			return "", err
		}
		delay = time.Duration(float64(delay) * mult)
	}
	return "", fmt.Errorf("%w after %d attempts: %v", ErrTransient, attempts, lastErr)
}
