// Package validate holds the pure field validators and display formatters used
// by the enrollment form: Brazilian document numbers (CPF/CNPJ), contact data,
// postal codes, birth dates and photo uploads. Functions here never touch the
// network or the session state.
package validate
