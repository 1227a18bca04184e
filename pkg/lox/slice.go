// Package lox - помощники для коллекций, которых нет в samber/lo.
package lox

import "fmt"

// MapErr - lo.Map для функции, которая может вернуть ошибку. Останавливается
// на первой ошибке и указывает индекс элемента.
func MapErr[T, R any](collection []T, iteratee func(item T) (R, error)) ([]R, error) {
	result := make([]R, 0, len(collection))

	for i, item := range collection {
		mapped, err := iteratee(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		result = append(result, mapped)
	}

	return result, nil
}
