// Package ratelimit implementa un limitador de intentos de ventana fija por clave de cliente.
//
// El contador vive en un Store intercambiable: MemoryStore (por proceso, sin persistencia)
// o RedisStore (compartido entre instancias). Es una defensa de mejor esfuerzo contra fuerza
// bruta desde un mismo cliente, no una frontera contra atacantes distribuidos.
package ratelimit

import (
	"context"
	"time"
)

// Store cuenta intentos por clave. Check debe serializar el acceso al contador de una misma
// clave: dos llamadas concurrentes nunca pueden superar juntas el límite.
type Store interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Policy límite de intentos por ventana.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Limiter aplica una Policy sobre un Store. Se construye una vez y se inyecta en los handlers.
type Limiter struct {
	store  Store
	policy Policy
}

// New construye el limitador.
func New(store Store, policy Policy) *Limiter {
	return &Limiter{store: store, policy: policy}
}

// Allow registra un intento para key y devuelve false si la ventana ya agotó el límite.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	return l.store.Check(ctx, key, l.policy.Limit, l.policy.Window)
}

// Policy devuelve la política configurada.
func (l *Limiter) Policy() Policy {
	return l.policy
}
