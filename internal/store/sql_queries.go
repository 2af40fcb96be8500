// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql builds queries with $n placeholders for pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = `id, email, name, password_hash, role, reset_code, reset_code_expires_at, created_at, updated_at`

const productColumns = `id, name, description, price_cents, img, img_key, category, in_stock, created_at, updated_at`

const (
	createUser = `INSERT INTO users (id, email, name, password_hash, role)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE lower(email) = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	setResetCode = `UPDATE users
    SET reset_code = $2, reset_code_expires_at = $3, updated_at = now()
    WHERE id = $1;`

	clearResetCode = `UPDATE users
    SET reset_code = NULL, reset_code_expires_at = NULL, updated_at = now()
    WHERE id = $1;`

	matchResetCode = `SELECT ` + userColumns + `
    FROM users
    WHERE lower(email) = $1 AND reset_code = $2 AND reset_code_expires_at > $3;`

	consumeResetCode = `UPDATE users
    SET password_hash = $4, reset_code = NULL, reset_code_expires_at = NULL, updated_at = now()
    WHERE lower(email) = $1 AND reset_code = $2 AND reset_code_expires_at > $3
    RETURNING ` + userColumns + `;`

	clearExpiredResetCodes = `UPDATE users
    SET reset_code = NULL, reset_code_expires_at = NULL, updated_at = now()
    WHERE reset_code_expires_at IS NOT NULL AND reset_code_expires_at <= $1;`
)

const (
	listCart = `SELECT p.id, p.name, p.description, p.price_cents, p.img, p.img_key, p.category, p.in_stock, p.created_at, p.updated_at, c.quantity
    FROM cart_lines c
    JOIN products p ON p.id = c.product_id
    WHERE c.user_id = $1
    ORDER BY c.line_id;`

	addCartLine = `INSERT INTO cart_lines (user_id, product_id, quantity)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id, product_id)
    DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity;`

	setCartLineQuantity = `UPDATE cart_lines
    SET quantity = $3
    WHERE user_id = $1 AND product_id = $2;`

	removeCartLine = `DELETE FROM cart_lines
    WHERE user_id = $1 AND product_id = $2;`
)

const (
	createProduct = `INSERT INTO products (id, name, description, price_cents, img, img_key, category, in_stock)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + productColumns + `;`

	getProduct = `SELECT ` + productColumns + `
    FROM products
    WHERE id = $1;`

	getProductByName = `SELECT ` + productColumns + `
    FROM products
    WHERE name = $1;`

	updateProduct = `UPDATE products
    SET name = $2, description = $3, price_cents = $4, img = $5, img_key = $6, category = $7, in_stock = $8, updated_at = now()
    WHERE id = $1
    RETURNING ` + productColumns + `;`

	deleteProduct = `DELETE FROM products
    WHERE id = $1
    RETURNING ` + productColumns + `;`

	deleteAllProducts = `DELETE FROM products;`

	catalogStats = `SELECT category, count(*), count(*) FILTER (WHERE in_stock)
    FROM products
    GROUP BY category
    ORDER BY category;`
)
