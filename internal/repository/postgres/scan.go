package postgres

import "github.com/jackc/pgx/v5"

// scanDays reduces a single-column day-number result set to a slice.
func scanDays(rows pgx.Rows, err error) ([]int, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
