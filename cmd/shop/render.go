package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"ecom-cart/client"
	"ecom-cart/models"
)

func renderProducts(w io.Writer, snap client.Snapshot) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDESCRIPTION")
	for _, p := range snap.Products {
		fmt.Fprintf(tw, "%d\t%s\t$%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Description)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d products, %d items in cart\n", len(snap.Products), snap.CartItemCount())
}

func renderProduct(w io.Writer, p *models.Product) {
	fmt.Fprintf(w, "#%d %s\n", p.ID, p.Name)
	fmt.Fprintf(w, "Price:  $%s\n", p.Price.StringFixed(2))
	fmt.Fprintf(w, "Image:  %s\n", p.Image)
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

func renderCart(w io.Writer, snap client.Snapshot) {
	if len(snap.Cart.Items) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CART ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range snap.Cart.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t$%s\t$%s\n",
			item.ID, item.Name, item.Quantity, item.Price.StringFixed(2), item.ItemTotal.StringFixed(2))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal: $%s\n", snap.Cart.Total.StringFixed(2))
}

func renderReceipt(w io.Writer, snap client.Snapshot) {
	r := snap.Receipt
	if r == nil {
		return
	}

	fmt.Fprintln(w, "Order Confirmed")
	fmt.Fprintf(w, "Order ID:  %s\n", r.OrderID)
	fmt.Fprintf(w, "Date:      %s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Customer:  %s <%s>\n", r.Customer.Name, r.Customer.Email)
	fmt.Fprintf(w, "Status:    %s\n\n", r.Status)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, item := range r.Items {
		fmt.Fprintf(tw, "%s x %d\t$%s\n", item.Name, item.Quantity, item.ItemTotal.StringFixed(2))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal: $%s\n", r.Total.StringFixed(2))
}
