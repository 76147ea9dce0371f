package providers

import (
	"fmt"
	"sync"
)

// Registry 提供商注册表
type Registry struct {
	mu        sync.RWMutex
	providers map[Kind]Provider
}

// NewRegistry 创建新的注册表
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[Kind]Provider),
	}
}

// Register 注册提供商
func (r *Registry) Register(provider Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[provider.Kind()]; exists {
		return fmt.Errorf("provider %s already registered", provider.Kind())
	}

	r.providers[provider.Kind()] = provider
	return nil
}

// Get 获取提供商
func (r *Registry) Get(kind Kind) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[kind]
	if !exists {
		return nil, fmt.Errorf("provider %s not found", kind)
	}

	return provider, nil
}

// List 按 Kinds() 的顺序列出已注册的提供商
func (r *Registry) List() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, 0, len(r.providers))
	for _, k := range Kinds() {
		if p, ok := r.providers[k]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Remove 移除提供商
func (r *Registry) Remove(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.providers, kind)
}
